package errors

import (
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "main", false},
		{"with dash", "logo-comp", false},
		{"with dot", "shot.010", false},
		{"uuid", "3f2b7c1e-9a4d-4e1b-8c3a-2d6e5f7a9b0c", false},
		{"with colon", "comp:1", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"leading dash", "-main", true},
		{"space", "main comp", true},
		{"slash", "a/b", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidProject) {
				t.Errorf("ValidateID(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateLayerName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"spaces", "Title Card 2", false},
		{"unicode", "Précomp · intro", false},

		{"tab", "foo\tbar", true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLayerName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLayerName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateProjectPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantCode Code
	}{
		{"json", "scene.json", false, ""},
		{"toml", "projects/intro.toml", false, ""},
		{"upper ext", "SCENE.JSON", false, ""},

		{"empty", "", true, ErrCodeInvalidPath},
		{"null byte", "foo\x00.json", true, ErrCodeInvalidPath},
		{"no extension", "scene", true, ErrCodeInvalidFormat},
		{"yaml", "scene.yaml", true, ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProjectPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, tt.wantCode) {
				t.Errorf("ValidateProjectPath(%q) code = %v, want %v", tt.input, GetCode(err), tt.wantCode)
			}
		})
	}
}
