package typewright

import "testing"

func TestIsUndefined(t *testing.T) {
	if !IsUndefined(Undefined) {
		t.Fatal("expected Undefined to report as undefined")
	}
	if IsUndefined(nil) {
		t.Fatal("expected nil not to be Undefined")
	}
	if IsUndefined(0) {
		t.Fatal("expected 0 not to be Undefined")
	}
}
