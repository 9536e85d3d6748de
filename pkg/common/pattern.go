package common

import (
	"fmt"
	"regexp"
)

func MustNewPattern(plain string) Pattern {
	var result Pattern
	if err := result.Set(plain); err != nil {
		panic(err)
	}
	return result
}

// Pattern is a regular expression usable as flag and inside YAML. An empty
// Pattern matches everything.
type Pattern struct {
	*regexp.Regexp
}

func (this *Pattern) Set(plain string) error {
	if plain == "" {
		this.Regexp = nil
		return nil
	}
	v, err := regexp.Compile(plain)
	if err != nil {
		return fmt.Errorf("illegal-pattern: %s", plain)
	}
	this.Regexp = v
	return nil
}

func (this Pattern) String() string {
	if this.Regexp == nil {
		return ""
	}
	return this.Regexp.String()
}

func (this Pattern) MatchString(s string) bool {
	if this.Regexp == nil {
		return true
	}
	return this.Regexp.MatchString(s)
}

func (this Pattern) MarshalText() ([]byte, error) {
	return []byte(this.String()), nil
}

func (this *Pattern) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

func (this Pattern) IsZero() bool {
	return this.Regexp == nil
}
