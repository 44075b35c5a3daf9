package services

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ProjectInput is the project form. Error keys returned by Validate are the
// json names below, which are also the form input names.
type ProjectInput struct {
	Customer      string `json:"customer"`
	ReferenceNo   string `json:"reference_number"`
	ProjectName   string `json:"project_name"`
	ProjectNumber string `json:"project_number"`
	AreaLocation  string `json:"area_location"`
	Address       string `json:"address"`
	DueDate       string `json:"due_date"`
	Contact       string `json:"contact"`
	Manager       string `json:"manager"`
	Staff         string `json:"staff"`
	Status        string `json:"status"`
	Email         string `json:"email"`
}

// ProjectFormFields lists the form input names in display order.
var ProjectFormFields = []string{
	"customer", "reference_number", "project_name", "project_number",
	"area_location", "address", "due_date", "contact", "manager", "staff",
	"status", "email",
}

var contactPattern = regexp.MustCompile(`^\d{10}$`)

// ProjectInputFromForm builds a ProjectInput from a lookup such as
// url.Values.Get, trimming every value.
func ProjectInputFromForm(get func(string) string) ProjectInput {
	v := func(k string) string { return strings.TrimSpace(get(k)) }
	return ProjectInput{
		Customer:      v("customer"),
		ReferenceNo:   v("reference_number"),
		ProjectName:   v("project_name"),
		ProjectNumber: v("project_number"),
		AreaLocation:  v("area_location"),
		Address:       v("address"),
		DueDate:       v("due_date"),
		Contact:       v("contact"),
		Manager:       v("manager"),
		Staff:         v("staff"),
		Status:        v("status"),
		Email:         v("email"),
	}
}

// Values returns the input keyed by form name.
func (p ProjectInput) Values() map[string]string {
	return map[string]string{
		"customer":         p.Customer,
		"reference_number": p.ReferenceNo,
		"project_name":     p.ProjectName,
		"project_number":   p.ProjectNumber,
		"area_location":    p.AreaLocation,
		"address":          p.Address,
		"due_date":         p.DueDate,
		"contact":          p.Contact,
		"manager":          p.Manager,
		"staff":            p.Staff,
		"status":           p.Status,
		"email":            p.Email,
	}
}

// Validate checks the form against statuses, the allowed status values. Every
// field is required.
func (p ProjectInput) Validate(statuses []string) error {
	allowed := make([]interface{}, len(statuses))
	for i, s := range statuses {
		allowed[i] = s
	}

	return validation.ValidateStruct(&p,
		validation.Field(&p.Customer, validation.Required.Error("Customer is required")),
		validation.Field(&p.ReferenceNo, validation.Required.Error("Reference number is required")),
		validation.Field(&p.ProjectName, validation.Required.Error("Project name is required")),
		validation.Field(&p.ProjectNumber, validation.Required.Error("Project number is required")),
		validation.Field(&p.AreaLocation, validation.Required.Error("Area location is required")),
		validation.Field(&p.Address, validation.Required.Error("Address is required")),
		validation.Field(&p.DueDate,
			validation.Required.Error("Due date is required"),
			validation.Date("2006-01-02").Error("Due date must be a valid date (YYYY-MM-DD)"),
		),
		validation.Field(&p.Contact,
			validation.Required.Error("Contact is required"),
			validation.Match(contactPattern).Error("Contact must be exactly 10 digits"),
		),
		validation.Field(&p.Manager, validation.Required.Error("Manager is required")),
		validation.Field(&p.Staff, validation.Required.Error("Staff is required")),
		validation.Field(&p.Status,
			validation.Required.Error("Status is required"),
			validation.In(allowed...).Error("Status must be one of "+strings.Join(statuses, ", ")),
		),
		validation.Field(&p.Email,
			validation.Required.Error("Email is required"),
			is.EmailFormat.Error("Email must be a valid email address"),
		),
	)
}

// ErrorMap flattens a Validate error into messages keyed by form name. Any
// error that is not a field error lands under "form".
func ErrorMap(err error) map[string]string {
	out := make(map[string]string)
	if err == nil {
		return out
	}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for k, v := range fieldErrs {
			out[k] = v.Error()
		}
		return out
	}
	out["form"] = err.Error()
	return out
}
