package memory

import (
	"context"

	"quiz-timer-service/internal/domain"
)

const defaultTimeLimit = 30

// StaticQuestionLoader serves a fixed in-memory catalog (built-in seed, tests, demos).
type StaticQuestionLoader struct {
	questions []domain.Question
}

func NewStaticQuestionLoader(questions []domain.Question) *StaticQuestionLoader {
	return &StaticQuestionLoader{questions: questions}
}

// NewSeedQuestionLoader serves the built-in general knowledge catalog.
func NewSeedQuestionLoader() *StaticQuestionLoader {
	return NewStaticQuestionLoader(SeedQuestions())
}

func (l *StaticQuestionLoader) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	if len(l.questions) == 0 {
		return nil, domain.ErrEmptyBank
	}
	out := make([]domain.Question, len(l.questions))
	for i, q := range l.questions {
		out[i] = q.Clone()
	}
	return out, nil
}

// SeedQuestions returns the built-in catalog with ids 1..25.
func SeedQuestions() []domain.Question {
	seed := []struct {
		prompt  string
		options []string
		correct int
	}{
		{"What is the capital of France?", []string{"London", "Berlin", "Paris", "Madrid"}, 2},
		{"Which planet is known as the Red Planet?", []string{"Venus", "Mars", "Jupiter", "Saturn"}, 1},
		{"What is the largest ocean on Earth?", []string{"Atlantic Ocean", "Indian Ocean", "Arctic Ocean", "Pacific Ocean"}, 3},
		{"Who wrote 'Romeo and Juliet'?", []string{"Charles Dickens", "William Shakespeare", "Jane Austen", "Mark Twain"}, 1},
		{"What is the chemical symbol for gold?", []string{"Ag", "Au", "Fe", "Cu"}, 1},
		{"Which year did World War II end?", []string{"1943", "1944", "1945", "1946"}, 2},
		{"What is the largest mammal in the world?", []string{"African Elephant", "Blue Whale", "Giraffe", "Hippopotamus"}, 1},
		{"Which programming language was created by James Gosling?", []string{"Python", "Java", "C++", "JavaScript"}, 1},
		{"What is the square root of 144?", []string{"10", "11", "12", "13"}, 2},
		{"Which country is home to the kangaroo?", []string{"New Zealand", "South Africa", "Australia", "India"}, 2},
		{"What is the main component of the sun?", []string{"Liquid Lava", "Molten Iron", "Hydrogen Gas", "Solid Rock"}, 2},
		{"How many sides does a hexagon have?", []string{"5", "6", "7", "8"}, 1},
		{"Which element has the chemical symbol 'O'?", []string{"Osmium", "Oxygen", "Oganesson", "Gold"}, 1},
		{"What is the largest hot desert in the world?", []string{"Sahara Desert", "Arabian Desert", "Gobi Desert", "Kalahari Desert"}, 0},
		{"Who painted the Mona Lisa?", []string{"Vincent van Gogh", "Pablo Picasso", "Leonardo da Vinci", "Michelangelo"}, 2},
		{"What is the speed of light in vacuum?", []string{"299,792 km/s", "199,792 km/s", "399,792 km/s", "499,792 km/s"}, 0},
		{"Which country had the largest population in 2020?", []string{"India", "China", "United States", "Russia"}, 1},
		{"What is the smallest prime number?", []string{"0", "1", "2", "3"}, 2},
		{"Which planet is closest to the Sun?", []string{"Venus", "Mercury", "Earth", "Mars"}, 1},
		{"What is the capital of Japan?", []string{"Seoul", "Beijing", "Tokyo", "Bangkok"}, 2},
		{"How many bones are in the adult human body?", []string{"206", "186", "226", "246"}, 0},
		{"What is the largest organ in the human body?", []string{"Heart", "Brain", "Liver", "Skin"}, 3},
		{"Which year did the first moon landing occur?", []string{"1967", "1968", "1969", "1970"}, 2},
		{"What is the currency of Japan?", []string{"Yuan", "Won", "Yen", "Ringgit"}, 2},
		{"How many continents are there on Earth?", []string{"5", "6", "7", "8"}, 2},
	}

	questions := make([]domain.Question, 0, len(seed))
	for i, s := range seed {
		questions = append(questions, domain.Question{
			ID:            i + 1,
			Prompt:        s.prompt,
			Options:       s.options,
			CorrectAnswer: s.correct,
			TimeLimit:     defaultTimeLimit,
		})
	}
	return questions
}
