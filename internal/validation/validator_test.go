package validation

import "testing"

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"min=3,max=10"`
	HopLimit uint32 `json:"hopLimit" validate:"max=7"`
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		input   sample
		wantErr bool
	}{
		{"valid", sample{Email: "a@b.co", Name: "abc", HopLimit: 7}, false},
		{"missing required", sample{Name: "abc"}, true},
		{"bad email", sample{Email: "nope", Name: "abc"}, true},
		{"name too short", sample{Email: "a@b.co", Name: "ab"}, true},
		{"name too long", sample{Email: "a@b.co", Name: "abcdefghijk"}, true},
		{"hop limit too high", sample{Email: "a@b.co", Name: "abc", HopLimit: 8}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%+v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePointer(t *testing.T) {
	v := NewValidator()
	if err := v.Validate(&sample{Email: "a@b.co", Name: "abc"}); err != nil {
		t.Errorf("Validate(pointer) error = %v", err)
	}
}

func TestValidateNonStruct(t *testing.T) {
	v := NewValidator()
	if err := v.Validate("not a struct"); err == nil {
		t.Error("Validate(string) expected error")
	}
}
