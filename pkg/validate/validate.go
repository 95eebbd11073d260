// Package validate checks request input against `validate` struct tags.
//
// Rules are comma-separated inside the tag:
//
//	required            value must be non-zero
//	nullable            empty value skips every other rule on the field
//	email               well-formed email address
//	url                 absolute http/https URL
//	numeric             parses as a number
//	integer             parses as a whole number
//	min=N / max=N       char length bound for strings, value bound for numbers
//	gte=N / lte=N       numeric value bound
//	in=a,b,c            value must match one of the listed options
//
//	type Input struct {
//	    Name   string `json:"name"   validate:"required,min=2,max=100"`
//	    Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
//	    Sort   string `json:"sort"   validate:"nullable,in=price_asc,price_desc,newest"`
//	}
package validate

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Struct runs every tagged rule on v (a struct or pointer to one) and returns
// failures keyed by the field's json name. Only the first failing rule per
// field is reported.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)

	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return errs
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := fieldName(field)
		rules := tokenize(tag)

		if ruleListed(rules, "nullable") && zeroValue(rv.Field(i)) {
			continue
		}
		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := check(rule, name, rv.Field(i)); msg != "" {
				errs[name] = msg
				break
			}
		}
	}
	return errs
}

// HasErrors reports whether Struct found at least one failure.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func check(rule, field string, v reflect.Value) string {
	name, param, _ := strings.Cut(rule, "=")
	text := fmt.Sprintf("%v", v.Interface())

	switch name {
	case "required":
		if zeroValue(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
	case "email":
		if !emailPattern.MatchString(text) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
	case "url":
		u, err := url.ParseRequestURI(text)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Sprintf("The %s must be a valid URL.", field)
		}
	case "numeric":
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}
	case "integer":
		if _, err := strconv.ParseInt(text, 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", field)
		}
	case "min":
		return checkBound(field, v, text, param, below)
	case "max":
		return checkBound(field, v, text, param, above)
	case "gte":
		if numberOf(v) < boundOf(param) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
	case "lte":
		if numberOf(v) > boundOf(param) {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}
	case "in":
		for _, option := range strings.Split(param, ",") {
			if text == strings.TrimSpace(option) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}
	return ""
}

type boundSide int

const (
	below boundSide = iota
	above
)

// checkBound applies min/max, which compare values for numbers and rune
// lengths for everything else.
func checkBound(field string, v reflect.Value, text, param string, side boundSide) string {
	limit := boundOf(param)
	if numericKind(v.Kind()) {
		n := numberOf(v)
		if side == below && n < limit {
			return fmt.Sprintf("The %s must be at least %s.", field, param)
		}
		if side == above && n > limit {
			return fmt.Sprintf("The %s must not be greater than %s.", field, param)
		}
		return ""
	}
	length := float64(len([]rune(text)))
	if side == below && length < limit {
		return fmt.Sprintf("The %s must be at least %s characters.", field, param)
	}
	if side == above && length > limit {
		return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
	}
	return ""
}

func zeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		// false is a legitimate value.
		return false
	default:
		if numericKind(v.Kind()) {
			return numberOf(v) == 0
		}
	}
	return false
}

func numericKind(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64 && k != reflect.Uintptr
}

func numberOf(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	f, _ := strconv.ParseFloat(fmt.Sprintf("%v", v.Interface()), 64)
	return f
}

func boundOf(param string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(param), 64)
	return f
}

func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return strings.ToLower(f.Name)
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

// ruleNames are the keywords that terminate an in= option list: a comma
// followed by one of these starts a new rule, any other comma belongs to the
// option list.
var ruleNames = []string{
	"required", "nullable", "email", "url", "numeric", "integer",
	"min=", "max=", "gte=", "lte=", "in=",
}

func startsRule(s string) bool {
	for _, name := range ruleNames {
		if strings.HasPrefix(s, name) {
			return true
		}
	}
	return false
}

// tokenize splits a validate tag on commas, keeping the multi-value options
// of in= together: "required,in=a,b,max=9" gives ["required" "in=a,b" "max=9"].
func tokenize(tag string) []string {
	var out []string
	var cur strings.Builder
	options := false

	for i := 0; i < len(tag); i++ {
		c := tag[i]
		if c != ',' {
			cur.WriteByte(c)
			if !options && strings.HasSuffix(cur.String(), "in=") {
				options = true
			}
			continue
		}
		if options && !startsRule(tag[i+1:]) {
			cur.WriteByte(c)
			continue
		}
		out = append(out, cur.String())
		cur.Reset()
		options = false
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

func ruleListed(rules []string, name string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == name {
			return true
		}
	}
	return false
}
