package main

import (
	"testing"

	"github.com/probeops/swisskit/internal/testutil"
	"github.com/probeops/swisskit/swiss"
)

func TestInfoCommand(t *testing.T) {
	quiet = false
	verbose = false
	jsonOut = false
	infoRootNS = swiss.DefaultRootNamespace
	infoVersionNS = swiss.DefaultInlineNamespace

	path := writeTestBundle(t, testutil.TableSpec{
		Variant: testutil.FlatMap,
		Ctrl:    []int8{0, 0},
		Keys:    []int32{1, 2},
		Vals:    []int32{10, 20},
	})

	output, err := captureOutput(t, func() error {
		return runInfo([]string{path})
	})
	if err != nil {
		t.Fatalf("runInfo() error = %v", err)
	}

	assertContains(t, output, []string{
		"Bundle Information:",
		"Variables: 2 (1 containers)",
		"* tbl",
		"flat_hash_map",
	})
}

func TestInfoCommand_JSON(t *testing.T) {
	quiet = false
	verbose = false
	jsonOut = true
	defer func() { jsonOut = false }()
	infoRootNS = swiss.DefaultRootNamespace
	infoVersionNS = swiss.DefaultInlineNamespace

	path := writeTestBundle(t, testutil.TableSpec{
		Variant: testutil.NodeSet,
		Ctrl:    []int8{0},
		Keys:    []int32{9},
	})

	output, err := captureOutput(t, func() error {
		return runInfo([]string{path})
	})
	if err != nil {
		t.Fatalf("runInfo() error = %v", err)
	}

	assertJSON(t, output)
	assertContains(t, output, []string{`"containers": 1`, "node_hash_set"})
}
