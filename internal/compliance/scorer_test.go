package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  RiskLevel
	}{
		{"perfect score", 100, RiskLow},
		{"low boundary", 90, RiskLow},
		{"just under low", 89.9999, RiskMedium},
		{"medium boundary", 70, RiskMedium},
		{"just under medium", 69.9999, RiskHigh},
		{"high boundary", 50, RiskHigh},
		{"just under high", 49.9999, RiskCritical},
		{"zero", 0, RiskCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.score); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}

func TestTrustWeight(t *testing.T) {
	tests := []struct {
		framework Framework
		want      float64
	}{
		{FrameworkGDPR, 0.9},
		{FrameworkHIPAA, 0.9},
		{FrameworkSOX, 0.8},
		{FrameworkPCIDSS, 0.8},
		{FrameworkCCPA, 0.7},
		{FrameworkISO27001, 0.6},
		{FrameworkCustom, 0.5},
		{Framework("MADE-UP"), 0.5}, // unknown falls back to CUSTOM
	}

	for _, tt := range tests {
		t.Run(string(tt.framework), func(t *testing.T) {
			if got := TrustWeight(tt.framework); got != tt.want {
				t.Errorf("TrustWeight(%s) = %v, want %v", tt.framework, got, tt.want)
			}
		})
	}
}

func TestScoreFramework_NoRules(t *testing.T) {
	score, level := ScoreFramework(nil, FrameworkGDPR, 0)
	assert.Equal(t, 100.0, score)
	assert.Equal(t, RiskLow, level)
}

func TestScoreFramework_CleanContract(t *testing.T) {
	score, level := ScoreFramework(nil, FrameworkGDPR, 6)
	assert.InDelta(t, 90.0, score, 0.001) // 100 * 0.9 trust weight
	assert.Equal(t, RiskLow, level)
}

func TestScoreFramework_SingleCriticalViolation(t *testing.T) {
	violations := []*Violation{{Severity: RiskCritical}}

	score, level := ScoreFramework(violations, FrameworkGDPR, 6)

	// base 100 - 1/6*100 = 83.33, penalty 10, trust 0.9
	assert.InDelta(t, 66.0, score, 0.01)
	assert.Equal(t, RiskHigh, level)
}

func TestScoreFramework_ClampsAtZero(t *testing.T) {
	var violations []*Violation
	for i := 0; i < 10; i++ {
		violations = append(violations, &Violation{Severity: RiskCritical})
	}

	score, level := ScoreFramework(violations, FrameworkGDPR, 2)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, RiskCritical, level)
}

func TestImplementationQuality(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"empty text", "", 0.5},
		{"vague language", "The parties agree to cooperate.", 0.5},
		{"obligation marker", "The vendor shall cooperate fully.", 0.7},
		{"obligation plus concrete detail", "Data shall be retained for 30 days.", 0.9},
		{"fully drafted", "Data shall be retained for 30 days pursuant to the schedule.", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := implementationQuality(tt.text)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}
