package typewright

import "testing"

func variants() (*HashType, *HashType) {
	t1 := Hash(
		HashField{Key: "kind", Step: ValueOf("t1")},
		HashField{Key: "name", Step: String()},
	)
	t2 := Hash(
		HashField{Key: "kind", Step: ValueOf("t2")},
		HashField{Key: "name", Step: String()},
	)
	return t1, t2
}

// Invariant 10: TaggedHash dispatch routes to the variant matching the
// discriminator's value.
func TestTaggedHashDispatchesByDiscriminator(t *testing.T) {
	t1, t2 := variants()
	tagged := TaggedBy("kind", t1, t2)

	res := tagged.Resolve(map[string]any{"kind": "t2", "name": "x"})
	if res.Halted() {
		t.Fatalf("unexpected halt: %v", res.Errors())
	}
	oh := res.Value().(*OrderedHash)
	if v, _ := oh.Get("kind"); v != "t2" {
		t.Fatalf("got %v", v)
	}
}

// S3: an unmatched discriminator value halts with a dispatch_miss.
func TestScenarioS3TaggedHashUnmatchedDiscriminator(t *testing.T) {
	t1, t2 := variants()
	tagged := TaggedBy("kind", t1, t2)

	res := tagged.Resolve(map[string]any{"kind": "t3", "name": "x"})
	if !res.Halted() {
		t.Fatal("expected Halt")
	}
	iss, ok := res.Errors().(Issue)
	if !ok || iss.Code != CodeDispatchMiss {
		t.Fatalf("expected dispatch_miss, got %v", res.Errors())
	}
}

func TestTaggedHashMissingDiscriminatorKey(t *testing.T) {
	t1, t2 := variants()
	tagged := TaggedBy("kind", t1, t2)

	res := tagged.Resolve(map[string]any{"name": "x"})
	if !res.Halted() {
		t.Fatal("expected Halt")
	}
}

func TestTaggedByPanicsWhenVariantMissingDiscriminatorField(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	bad := Hash(HashField{Key: "name", Step: String()})
	TaggedBy("kind", bad)
}

func TestTaggedByPanicsWhenDiscriminatorIsNotStatic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	bad := Hash(HashField{Key: "kind", Step: String()})
	TaggedBy("kind", bad)
}
