package main

import (
	"strings"
	"testing"

	"github.com/rverma/filmi/internal/testutil"
	"github.com/rverma/filmi/pkg/runtime"
)

func TestConformance(t *testing.T) {
	for _, scenario := range testutil.Scenarios {
		scenario := scenario
		t.Run(scenario.Name, func(t *testing.T) {
			rt := runtime.New()
			result, diag := rt.Run(scenario.Source)

			if scenario.ExpectStage != "" {
				if diag == nil {
					t.Fatalf("expected a %s, program ran successfully with output %v", scenario.ExpectStage, result)
				}
				msg := diag.Error()
				if !strings.Contains(msg, scenario.ExpectStage) {
					t.Errorf("got diagnostic %q, want stage %q", msg, scenario.ExpectStage)
				}
				if scenario.ExpectMessageContains != "" && !strings.Contains(msg, scenario.ExpectMessageContains) {
					t.Errorf("got diagnostic %q, want it to contain %q", msg, scenario.ExpectMessageContains)
				}
				return
			}

			if diag != nil {
				t.Fatalf("unexpected diagnostic: %v", diag)
			}
			if len(result.Output) != len(scenario.ExpectOutput) {
				t.Fatalf("output line count: got %v, want %v", result.Output, scenario.ExpectOutput)
			}
			for i, want := range scenario.ExpectOutput {
				if result.Output[i] != want {
					t.Errorf("output[%d]: got %q, want %q", i, result.Output[i], want)
				}
			}
		})
	}
}
