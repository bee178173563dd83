package model

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewContact(t *testing.T) {
	Convey("Given optional contact fields", t, func() {
		name := "Jane"
		phone := "555-0100"
		empty := ""

		Convey("When both fields are present", func() {
			c, err := NewContact(&name, &phone)

			Convey("Then a contact is built", func() {
				So(err, ShouldBeNil)
				So(c, ShouldResemble, Contact{Name: "Jane", PhoneNumber: "555-0100"})
			})
		})

		Convey("When the phone number is absent", func() {
			_, err := NewContact(&name, nil)

			Convey("Then a missing field error is returned", func() {
				So(errors.Is(err, ErrMissingField), ShouldBeTrue)
			})
		})

		Convey("When the name is absent", func() {
			_, err := NewContact(nil, &phone)

			Convey("Then a missing field error is returned", func() {
				So(errors.Is(err, ErrMissingField), ShouldBeTrue)
			})
		})

		Convey("When a field is present but empty", func() {
			c, err := NewContact(&empty, &phone)

			Convey("Then it is accepted as-is", func() {
				So(err, ShouldBeNil)
				So(c.Name, ShouldEqual, "")
			})
		})

		Convey("Then the error text matches the API message", func() {
			So(ErrMissingField.Error(), ShouldEqual, "please provide a `name` and a `phone_number` field")
		})
	})
}
