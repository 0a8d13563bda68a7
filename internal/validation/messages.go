package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	LocaleEN = "en"
	LocaleVI = "vi"
)

type catalog struct {
	byTag    map[string]string
	lengths  map[string]string
	fallback string
}

var catalogs = map[string]catalog{
	LocaleEN: {
		byTag: map[string]string{
			"required": "This field is required",
			"email":    "Must be a valid email address",
			"url":      "Must be a valid URL",
			"gt":       "Must be greater than %s",
			"gte":      "Must be at least %s",
			"lt":       "Must be less than %s",
			"lte":      "Must be at most %s",
			"ltfield":  "Must be less than %s",
			"gtfield":  "Must be after %s",
			"oneof":    "Must be one of: %s",
			"alphanum": "Must contain only letters and digits",
			"slug":     "Only lowercase letters, digits and hyphens are allowed",
			"phone":    "Must be a valid phone number",
			"min":      "Must be at least %s",
			"max":      "Must be at most %s",
		},
		lengths: map[string]string{
			"min.string": "Must be at least %s characters",
			"max.string": "Must be at most %s characters",
			"min.slice":  "Must contain at least %s items",
			"max.slice":  "Must contain at most %s items",
		},
		fallback: "Invalid value",
	},
	LocaleVI: {
		byTag: map[string]string{
			"required": "Trường này là bắt buộc",
			"email":    "Email không hợp lệ",
			"url":      "URL không hợp lệ",
			"gt":       "Phải lớn hơn %s",
			"gte":      "Phải lớn hơn hoặc bằng %s",
			"lt":       "Phải nhỏ hơn %s",
			"lte":      "Phải nhỏ hơn hoặc bằng %s",
			"ltfield":  "Phải nhỏ hơn %s",
			"gtfield":  "Phải sau %s",
			"oneof":    "Phải là một trong: %s",
			"alphanum": "Chỉ được chứa chữ và số",
			"slug":     "Chỉ được chứa chữ thường, số và dấu gạch ngang",
			"phone":    "Số điện thoại không hợp lệ",
			"min":      "Phải lớn hơn hoặc bằng %s",
			"max":      "Phải nhỏ hơn hoặc bằng %s",
		},
		lengths: map[string]string{
			"min.string": "Phải có ít nhất %s ký tự",
			"max.string": "Không được vượt quá %s ký tự",
			"min.slice":  "Phải có ít nhất %s mục",
			"max.slice":  "Không được vượt quá %s mục",
		},
		fallback: "Giá trị không hợp lệ",
	},
}

func catalogFor(locale string) catalog {
	if c, ok := catalogs[strings.ToLower(locale)]; ok {
		return c
	}
	return catalogs[LocaleEN]
}

func (c catalog) message(fe validator.FieldError) string {
	tag := fe.Tag()
	if tag == "min" || tag == "max" {
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf(c.lengths[tag+".string"], fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf(c.lengths[tag+".slice"], fe.Param())
		}
	}

	tmpl, ok := c.byTag[tag]
	if !ok {
		return c.fallback
	}
	if !strings.Contains(tmpl, "%s") {
		return tmpl
	}
	param := fe.Param()
	if strings.HasSuffix(tag, "field") {
		param = lowerFirst(param)
	}
	return fmt.Sprintf(tmpl, param)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
