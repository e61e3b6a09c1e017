package main

import (
	"strings"
	"testing"

	"github.com/probeops/swisskit/internal/testutil"
)

func TestTypesCommand(t *testing.T) {
	quiet = false
	verbose = false
	jsonOut = false
	typesFilter = ""

	path := writeTestBundle(t, testutil.TableSpec{
		Variant: testutil.FlatSet,
		Ctrl:    []int8{0},
		Keys:    []int32{1},
	})

	output, err := captureOutput(t, func() error {
		return runTypes([]string{path})
	})
	if err != nil {
		t.Fatalf("runTypes() error = %v", err)
	}

	assertContains(t, output, []string{
		testutil.TableTypeName(testutil.FlatSet),
		"CommonFields",
	})
}

func TestTypesCommand_Filter(t *testing.T) {
	quiet = false
	verbose = false
	jsonOut = false
	typesFilter = "slot_type"
	defer func() { typesFilter = "" }()

	path := writeTestBundle(t, testutil.TableSpec{
		Variant: testutil.FlatSet,
		Ctrl:    []int8{0},
		Keys:    []int32{1},
	})

	output, err := captureOutput(t, func() error {
		return runTypes([]string{path})
	})
	if err != nil {
		t.Fatalf("runTypes() error = %v", err)
	}

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if !strings.Contains(line, "slot_type") {
			t.Errorf("filtered output has stray line %q", line)
		}
	}
}
