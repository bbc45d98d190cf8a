package order

import (
	"errors"
	"net/mail"
	"strings"

	"printshop/internal/pkg/errs"
)

// DefaultCountry is used when the customer leaves the country blank.
const DefaultCountry = "España"

// Customer holds the contact and shipping details of the person who placed the order.
type Customer struct {
	name       string
	email      string
	phone      string
	company    string
	address    string
	city       string
	postalCode string
	country    string
}

// NewCustomer validates contact details. Company and country are optional;
// every other field is required and the email must be a bare address.
func NewCustomer(name, email, phone, company, address, city, postalCode, country string) (Customer, error) {
	c := Customer{
		company: strings.TrimSpace(company),
		country: strings.TrimSpace(country),
	}
	if c.country == "" {
		c.country = DefaultCountry
	}

	if err := errors.Join(
		required("customer name", name, &c.name),
		c.setEmail(email),
		required("customer phone", phone, &c.phone),
		required("customer address", address, &c.address),
		required("customer city", city, &c.city),
		required("customer postal code", postalCode, &c.postalCode),
	); err != nil {
		return Customer{}, err
	}

	return c, nil
}

func (c Customer) Name() string       { return c.name }
func (c Customer) Email() string      { return c.email }
func (c Customer) Phone() string      { return c.phone }
func (c Customer) Company() string    { return c.company }
func (c Customer) Address() string    { return c.address }
func (c Customer) City() string       { return c.city }
func (c Customer) PostalCode() string { return c.postalCode }
func (c Customer) Country() string    { return c.country }

// HasEmail compares addresses case-insensitively.
func (c Customer) HasEmail(email string) bool {
	return strings.EqualFold(c.email, strings.TrimSpace(email))
}

func (c Customer) IsZero() bool {
	return c.email == ""
}

func (c *Customer) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("customer email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("customer email", err)
	}
	c.email = strings.ToLower(email)
	return nil
}

func required(param, value string, dst *string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	*dst = value
	return nil
}
