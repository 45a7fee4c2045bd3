// Package validation wraps go-playground/validator with the rules request
// bodies need and turns its errors into readable messages.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9]+(?:[-_][A-Za-z0-9]+)*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return Slug(fl.Field().String())
	})
	return v
}

// Slug reports whether s is URL-safe: letters, digits and single
// separators, no leading or trailing separator.
func Slug(s string) bool {
	return slugPattern.MatchString(s)
}

// Struct validates the `validate` tags of s.
func Struct(s any) error {
	return Message(validate.Struct(s))
}

// Var validates a single value against a tag expression.
func Var(field any, tag string) error {
	return Message(validate.Var(field, tag))
}

// SocialLinks accepts a mapping of non-empty network names to http(s) URLs.
func SocialLinks(links map[string]string) error {
	for name, link := range links {
		if strings.TrimSpace(name) == "" {
			return errors.New("social_links keys must not be empty")
		}
		u, err := url.Parse(link)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("social_links.%s must be an http(s) URL", name)
		}
	}
	return nil
}

// Message rewrites validator errors into one sentence listing each field.
func Message(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, describe(fe))
	}
	return errors.New(strings.Join(parts, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	if field == "" {
		field = "value"
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min", "gt", "gte":
		return fmt.Sprintf("%s must be at least %s", field, minParam(fe))
	case "slug":
		return field + " must be URL-safe"
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}

func minParam(fe validator.FieldError) string {
	if fe.Tag() == "gt" {
		return fe.Param() + " (exclusive)"
	}
	return fe.Param()
}
