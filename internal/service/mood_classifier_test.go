package service

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func TestClassifyMood_NeutralWhenNoKeywords(t *testing.T) {
	c := NewMoodClassifier(nil)
	for _, text := range []string{"", "   ", "The weather report said it might rain later"} {
		got := c.ClassifyMood(text)
		if got.Score != 0 || !reflect.DeepEqual(got.Tags, []string{"neutral"}) || !got.IsDefault {
			t.Fatalf("expected neutral for %q, got %+v", text, got)
		}
	}
}

func TestClassifyMood_AnxiousAndOverwhelmed(t *testing.T) {
	c := NewMoodClassifier(nil)
	got := c.ClassifyMood("I feel so anxious and overwhelmed today")
	if !reflect.DeepEqual(got.Tags, []string{"anxiety", "overwhelm"}) {
		t.Fatalf("unexpected tags %v", got.Tags)
	}
	if got.Score > -0.25 {
		t.Fatalf("expected score <= -0.25, got %v", got.Score)
	}
	if got.IsDefault {
		t.Fatalf("expected non-default result")
	}
}

func TestClassifyMood_TruncatesInTableOrder(t *testing.T) {
	c := NewMoodClassifier(nil)
	got := c.ClassifyMood("Calm but ANGRY, happy yet sad and anxious")
	if !reflect.DeepEqual(got.Tags, []string{"anxiety", "depression", "joy"}) {
		t.Fatalf("expected first three categories in table order, got %v", got.Tags)
	}
	// anxiety, depression, anger restan; joy y calm suman.
	want := -0.25 - 0.25 + 0.3 - 0.25 + 0.3
	if diff := got.Score - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected score %v, got %v", want, got.Score)
	}
}

func TestClassifyMood_ClampsScore(t *testing.T) {
	c := NewMoodClassifier(nil)
	got := c.ClassifyMood("happy and calm, full of hope, thank you")
	if got.Score != 1 {
		t.Fatalf("expected clamp to 1, got %v", got.Score)
	}

	neg := NewMoodClassifier(KeywordTable{
		{Name: "a", Weight: -0.6, Keywords: []string{"x"}},
		{Name: "b", Weight: -0.6, Keywords: []string{"y"}},
	})
	if got := neg.ClassifyMood("x y"); got.Score != -1 {
		t.Fatalf("expected clamp to -1, got %v", got.Score)
	}
}

func TestClassifyMood_OverwhelmDoesNotScore(t *testing.T) {
	c := NewMoodClassifier(nil)
	got := c.ClassifyMood("completely drained")
	if got.Score != 0 || !reflect.DeepEqual(got.Tags, []string{"overwhelm"}) || got.IsDefault {
		t.Fatalf("expected overwhelm tag with zero score, got %+v", got)
	}
}

func TestClassifyMood_RangeProperty(t *testing.T) {
	c := NewMoodClassifier(nil)
	var words []string
	for _, cat := range DefaultEmotionKeywords() {
		words = append(words, cat.Keywords...)
	}
	words = append(words, "the", "day", "was", "LONG", "and", "", "🌱")

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		n := rng.Intn(12)
		parts := make([]string, n)
		for j := range parts {
			parts[j] = words[rng.Intn(len(words))]
		}
		text := strings.Join(parts, " ")
		got := c.ClassifyMood(text)
		if got.Score < -1 || got.Score > 1 {
			t.Fatalf("score out of range for %q: %v", text, got.Score)
		}
		if len(got.Tags) < 1 || len(got.Tags) > 3 {
			t.Fatalf("tag count out of range for %q: %v", text, got.Tags)
		}
	}
}

func TestDefaultEmotionKeywords_ReturnsFreshCopy(t *testing.T) {
	a := DefaultEmotionKeywords()
	a[0].Keywords[0] = "mutated"
	b := DefaultEmotionKeywords()
	if b[0].Keywords[0] != "anxious" {
		t.Fatalf("expected independent tables, got %q", b[0].Keywords[0])
	}
}
