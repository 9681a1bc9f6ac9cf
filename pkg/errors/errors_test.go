package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		code     Code
		format   string
		args     []any
		wantMsg  string
		wantCode Code
	}{
		{
			name:     "simple message",
			code:     ErrCodeOverflow,
			format:   "left column cannot fit notes",
			wantMsg:  "left column cannot fit notes",
			wantCode: ErrCodeOverflow,
		},
		{
			name:     "formatted message",
			code:     ErrCodeMissingAnchor,
			format:   "anchor %q not measured",
			args:     []any{"sn-3"},
			wantMsg:  `anchor "sn-3" not measured`,
			wantCode: ErrCodeMissingAnchor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.format, tt.args...)
			if err.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", err.Code, tt.wantCode)
			}
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Cause != nil {
				t.Errorf("Cause = %v, want nil", err.Cause)
			}
			if !strings.Contains(err.Error(), string(tt.wantCode)) {
				t.Errorf("Error() = %q, want code prefix %q", err.Error(), tt.wantCode)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("unexpected token at line 4")
	err := Wrap(ErrCodeInvalidSnapshot, cause, "decode %s", "page.toml")

	if err.Code != ErrCodeInvalidSnapshot {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidSnapshot)
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if !strings.Contains(err.Error(), "unexpected token") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{
			name: "matching code",
			err:  New(ErrCodeOverflow, "no room"),
			code: ErrCodeOverflow,
			want: true,
		},
		{
			name: "non-matching code",
			err:  New(ErrCodeOverflow, "no room"),
			code: ErrCodeInvalidSide,
			want: false,
		},
		{
			name: "wrapped structured error",
			err:  fmt.Errorf("run failed: %w", New(ErrCodeOverflow, "no room")),
			code: ErrCodeOverflow,
			want: true,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("plain"),
			code: ErrCodeOverflow,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			code: ErrCodeOverflow,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidMode, "bad mode")); got != ErrCodeInvalidMode {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidMode)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeFileNotFound, "snapshot %s not found", "page.json")
	if got := UserMessage(err); got != "snapshot page.json not found" {
		t.Errorf("UserMessage() = %q, want message without code prefix", got)
	}

	plain := fmt.Errorf("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain failure")
	}
}
