package primitives

import (
	"strings"
	"testing"
)

func TestConnectOptions_NormalizeDefaults(t *testing.T) {
	var o ConnectOptions
	o.Normalize()

	if o.Label != DefaultDiagnosticLabel {
		t.Errorf("Label = %q, want %q", o.Label, DefaultDiagnosticLabel)
	}
	if o.ContextKey != DefaultContextKey {
		t.Errorf("ContextKey = %q, want %q", o.ContextKey, DefaultContextKey)
	}
	if got := o.NameFormatter("Counter"); got != "Connect(Counter)" {
		t.Errorf("NameFormatter(Counter) = %q, want Connect(Counter)", got)
	}
}

func TestConnectOptions_NormalizeKeepsExplicit(t *testing.T) {
	o := ConnectOptions{
		Label:      "bindTo",
		ContextKey: "alt",
		NameFormatter: func(name string) string {
			return "Bound[" + name + "]"
		},
	}
	o.Normalize()

	if o.Label != "bindTo" {
		t.Errorf("Label = %q, want bindTo", o.Label)
	}
	if o.ContextKey != "alt" {
		t.Errorf("ContextKey = %q, want alt", o.ContextKey)
	}
	if got := o.NameFormatter("X"); got != "Bound[X]" {
		t.Errorf("NameFormatter(X) = %q, want Bound[X]", got)
	}
}

func TestConnectOptions_ValidateRejectsReservedExtraKeys(t *testing.T) {
	for _, key := range []string{"store", "displayName", "forwardRef", "withRef"} {
		o := ConnectOptions{Label: "bindTo", Extra: Props{key: true}}
		err := o.Validate()
		if err == nil {
			t.Errorf("Validate accepted reserved extra key %q", key)
			continue
		}
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not name offending key %q", err, key)
		}
		if !strings.Contains(err.Error(), "bindTo") {
			t.Errorf("error %q does not carry diagnostic label", err)
		}
	}
}

func TestConnectOptions_ValidateAcceptsOpenBag(t *testing.T) {
	o := ConnectOptions{Extra: Props{"areStatesEqual": "identity", "custom": 7}}
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}
