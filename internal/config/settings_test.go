package config

import "testing"

func TestClamp_PullsOutOfRangeValuesToNearestBound(t *testing.T) {
	s := Settings{
		RenderTextureSize: 99999,
		ViewerInset:       0.9,
		TargetInset:       -1,
		AlphaThreshold:    5,
		ViewerNumPoints:   3,
		TargetNumPoints:   7,
	}
	s.Clamp()

	if s.RenderTextureSize != 4096 {
		t.Errorf("RenderTextureSize = %v, want 4096", s.RenderTextureSize)
	}
	if s.ViewerInset != 0.499 {
		t.Errorf("ViewerInset = %v, want 0.499", s.ViewerInset)
	}
	if s.TargetInset != 0 {
		t.Errorf("TargetInset = %v, want 0", s.TargetInset)
	}
	if s.AlphaThreshold != 0.99 {
		t.Errorf("AlphaThreshold = %v, want 0.99", s.AlphaThreshold)
	}
	if s.ViewerNumPoints != 5 {
		t.Errorf("ViewerNumPoints = %v, want nearest(3)=5", s.ViewerNumPoints)
	}
	if s.TargetNumPoints != 9 {
		t.Errorf("TargetNumPoints = %v, want nearest(7)=9", s.TargetNumPoints)
	}
}

func TestDefault_MatchesDocumentedDefaults(t *testing.T) {
	if Default.LOSAlgorithm != AlgorithmGeometric {
		t.Errorf("Default.LOSAlgorithm = %v, want geometric", Default.LOSAlgorithm)
	}
	if Default.ViewerNumPoints != 1 || Default.TargetNumPoints != 9 {
		t.Errorf("Default point counts = %d/%d, want 1/9", Default.ViewerNumPoints, Default.TargetNumPoints)
	}
	if Default.AlphaThreshold != 0.75 {
		t.Errorf("Default.AlphaThreshold = %v, want 0.75", Default.AlphaThreshold)
	}
	if Default.RenderTextureSize != 100 {
		t.Errorf("Default.RenderTextureSize = %v, want 100", Default.RenderTextureSize)
	}
}
