package service

import (
	"encoding/binary"
	"slices"
	"strings"

	"golang.org/x/crypto/blake2b"
)

var (
	anxietySuggestions = []string{
		"Let's calm your mind together: Try box breathing (inhale-4, hold-4, exhale-4, hold-4) 🫁",
		"I'm here with you. Ground yourself: Name 5 things you see, 4 you can touch, 3 you hear 🌿",
		"Your worries are valid. Try progressive muscle relaxation—tense and release each muscle group 💆",
	}
	lowMoodSuggestions = []string{
		"I see you're hurting. Even small steps matter—try a 5-minute walk outside 🚶",
		"You're not alone in this. Journal 3 things you did today, no matter how small ✍️",
		"Gentle reminder: Reach out to one person. Connection heals, even through text 💙",
		"Your feelings are real. Try listening to uplifting music and moving gently 🎵",
	}
	angerSuggestions = []string{
		"Your anger is telling you something. Try journaling: 'I feel angry because...' 🔥→📝",
		"Let's channel this energy: Do 10 jumping jacks or punch a pillow. Physical release helps 🥊",
		"Pause with me. Take 5 deep breaths. Then write what you need to feel heard 🫂",
	}
	joySuggestions = []string{
		"Your joy is contagious! 🌟 Capture this: Write about what made you smile today",
		"Brilliant! Share this happiness—text someone about your good news 🎉",
		"This is beautiful! Take a photo or save a memento of this joyful moment 📸",
	}
	growthSuggestions = []string{
		"Keep growing your garden 🌻 Consistency builds resilience—I'm here with you",
		"Every echo matters 🌸 You're building self-awareness one reflection at a time",
		"Proud of you for showing up 🌿 Try a gratitude practice tonight before sleep",
		"You're doing the work 💪 Tomorrow, notice one small moment of beauty",
	}
)

const (
	lonelinessSuggestion  = "Loneliness is hard. Reach out to someone you trust—even a small hello can create warmth 🤝💛"
	gratitudeSuggestion   = "Gratitude is powerful! 🙏 Write 3 specific things you're thankful for and why"
	hopeSuggestion        = "Love your energy! 🌱 Set one small intention for tomorrow and visualize it happening"
	celebrationSuggestion = "You should be proud! 🏆 Celebrate this win—treat yourself to something you enjoy"
	calmSuggestion        = "What beautiful balance ☮️ Keep this peace: Try a 5-minute meditation or nature sounds"
)

// SuggestionSelector elige una actividad de bienestar segun emociones y mood.
// Seed fija el indice determinista entre candidatos; mismo seed y mismas etiquetas, misma sugerencia.
type SuggestionSelector struct {
	Seed uint64
}

func (s SuggestionSelector) SelectSuggestion(tags []string, moodScore float64) string {
	has := func(names ...string) bool {
		for _, name := range names {
			if slices.Contains(tags, name) {
				return true
			}
		}
		return false
	}
	pick := func(candidates []string) string {
		return candidates[stableIndex(s.Seed, tags, len(candidates))]
	}

	switch {
	case has("anxiety", "overwhelm", "overwhelmed"):
		return pick(anxietySuggestions)
	case has("depression", "sad") || moodScore < -0.5:
		return pick(lowMoodSuggestions)
	case has("loneliness", "lonely", "isolated"):
		return lonelinessSuggestion
	case has("anger", "frustrated"):
		return pick(angerSuggestions)
	case has("joy", "happy"):
		return pick(joySuggestions)
	case has("gratitude"):
		return gratitudeSuggestion
	case has("hope", "inspired"):
		return hopeSuggestion
	case has("proud") || moodScore > 0.5:
		return celebrationSuggestion
	case has("calm", "peaceful"):
		return calmSuggestion
	default:
		return pick(growthSuggestions)
	}
}

// stableIndex devuelve un indice en [0,n) que depende solo del seed y del conjunto de etiquetas.
func stableIndex(seed uint64, tags []string, n int) int {
	if n <= 1 {
		return 0
	}
	sorted := slices.Clone(tags)
	slices.Sort(sorted)

	var key [8]byte
	binary.BigEndian.PutUint64(key[:], seed)
	h, err := blake2b.New256(key[:])
	if err != nil {
		return 0
	}
	h.Write([]byte(strings.Join(sorted, "|")))
	sum := h.Sum(nil)
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}
