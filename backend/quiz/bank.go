package quiz

import (
	"fmt"

	"quizapp/backend/models"
)

// Bank holds the fixed question set for each subject.
type Bank struct {
	questions map[models.Subject][]models.Question
}

// NewBank validates every question and builds a bank from them.
func NewBank(questions map[models.Subject][]models.Question) (*Bank, error) {
	b := &Bank{questions: make(map[models.Subject][]models.Question, len(questions))}
	for subject, qs := range questions {
		if !subject.Valid() {
			return nil, fmt.Errorf("%w: %q", models.ErrUnknownSubject, subject)
		}
		for i, q := range qs {
			if err := q.Validate(); err != nil {
				return nil, fmt.Errorf("%s question %d: %w", subject, i+1, err)
			}
		}
		b.questions[subject] = copyQuestions(qs)
	}
	return b, nil
}

// QuestionsFor returns a copy of the subject's questions in stored order.
func (b *Bank) QuestionsFor(subject models.Subject) ([]models.Question, error) {
	qs, ok := b.questions[subject]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownSubject, subject)
	}
	return copyQuestions(qs), nil
}

func copyQuestions(qs []models.Question) []models.Question {
	out := make([]models.Question, len(qs))
	for i, q := range qs {
		out[i] = models.Question{
			Question: q.Question,
			Options:  append([]string(nil), q.Options...),
			Answer:   q.Answer,
		}
	}
	return out
}

// DefaultQuestions returns the built-in question set.
func DefaultQuestions() map[models.Subject][]models.Question {
	return map[models.Subject][]models.Question{
		models.SubjectPython: {
			{Question: "What is the output of print(2 ** 3)?", Options: []string{"6", "8", "9", "16"}, Answer: 1},
			{Question: "Which of the following is immutable?", Options: []string{"List", "Set", "Dictionary", "Tuple"}, Answer: 3},
			{Question: "How do you define a function in Python?", Options: []string{"def", "function", "define", "func"}, Answer: 0},
			{Question: "What does the len() function do?", Options: []string{"Find length of an object", "Find type of an object", "Find maximum value", "Find minimum value"}, Answer: 0},
			{Question: "What is the output of bool([])?", Options: []string{"True", "False", "Error", "None"}, Answer: 1},
		},
		models.SubjectDSA: {
			{Question: "What is the time complexity of binary search?", Options: []string{"O(log n)", "O(n)", "O(n^2)", "O(1)"}, Answer: 0},
			{Question: "Which data structure uses LIFO?", Options: []string{"Queue", "Stack", "Heap", "Tree"}, Answer: 1},
			{Question: "What is the worst-case time complexity of quicksort?", Options: []string{"O(n log n)", "O(n^2)", "O(n)", "O(log n)"}, Answer: 1},
			{Question: "Which data structure uses FIFO?", Options: []string{"Queue", "Stack", "Heap", "Graph"}, Answer: 0},
			{Question: "What is a full binary tree?", Options: []string{"Every node has 0 or 2 children", "All leaves are at the same level", "All nodes have 2 children", "All levels are filled"}, Answer: 0},
		},
		models.SubjectDBMS: {
			{Question: "Which command retrieves data from a database?", Options: []string{"SELECT", "DELETE", "INSERT", "UPDATE"}, Answer: 0},
			{Question: "Which key uniquely identifies a record?", Options: []string{"Primary Key", "Foreign Key", "Candidate Key", "Super Key"}, Answer: 0},
			{Question: "What does ACID stand for?", Options: []string{"Atomicity, Consistency, Isolation, Durability", "Addition, Consistency, Integrity, Data", "Atomicity, Change, Isolation, Durability", "Atomicity, Consistency, Integrity, Durability"}, Answer: 0},
			{Question: "Which normal form removes partial dependency?", Options: []string{"1NF", "2NF", "3NF", "BCNF"}, Answer: 1},
			{Question: "What is a foreign key?", Options: []string{"A primary key in another table", "A unique key", "A key in the same table", "A composite key"}, Answer: 0},
		},
	}
}

// DefaultBank returns a bank over DefaultQuestions.
func DefaultBank() *Bank {
	b, err := NewBank(DefaultQuestions())
	if err != nil {
		panic(err)
	}
	return b
}
