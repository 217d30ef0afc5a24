package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"echo-bloom/internal/domain"
)

func TestClassifyText(t *testing.T) {
	got := classifyText("I feel happy and calm", 0)
	if got.MoodScore != 0.6 {
		t.Fatalf("expected mood 0.6, got %v", got.MoodScore)
	}
	if got.GrowthStage != domain.GrowthStageBloom || got.StageName != "bloom" {
		t.Fatalf("expected bloom, got %d (%s)", got.GrowthStage, got.StageName)
	}
	if got.SeedType != domain.SeedTypeJoy {
		t.Fatalf("expected joy seed type, got %s", got.SeedType)
	}
	if got.Suggestion == "" {
		t.Fatalf("expected a suggestion")
	}
}

func TestClassifyText_Neutral(t *testing.T) {
	got := classifyText("the bus was on time", 0)
	if got.MoodScore != 0 || len(got.EmotionTags) != 1 || got.EmotionTags[0] != "neutral" {
		t.Fatalf("expected neutral result, got %+v", got)
	}
	if got.GrowthStage != domain.GrowthStageSeed {
		t.Fatalf("expected seed stage, got %d", got.GrowthStage)
	}
}

func TestClassifyCommand_WritesJSON(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"classify", "I", "am", "so", "anxious"})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	var got classification
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v (%s)", err, out.String())
	}
	if got.MoodScore != -0.25 || got.EmotionTags[0] != "anxiety" {
		t.Fatalf("unexpected classification: %+v", got)
	}
	if got.SeedType != domain.SeedTypeConcern {
		t.Fatalf("expected concern seed type, got %s", got.SeedType)
	}
}

func TestSubmitCommand_RequiresUser(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"submit", "hello"})

	err := root.Execute()
	if !errors.Is(err, errUserRequired) {
		t.Fatalf("expected errUserRequired, got %v", err)
	}
}
