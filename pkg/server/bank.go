package server

import (
	"math/rand"
	"sort"

	"github.com/hireloop/intervue/pkg/interview"
)

// fallbackRole is used when a request names a job type the bank does not
// know.
const fallbackRole = "Full Stack Developer"

type mcqEntry struct {
	Question   string
	Options    []string
	Answer     string
	Difficulty string
}

type bank struct {
	MCQ    []mcqEntry
	Short  []string
	Coding []string
}

var questionBanks = buildBanks()

func buildBanks() map[string]bank {
	banks := map[string]bank{
		"AI/Machine Learning": {
			MCQ: []mcqEntry{
				{
					Question: "What is the primary purpose of the activation function in a neural network?",
					Options: []string{
						"To introduce non-linearity into the model",
						"To initialize weights",
						"To reduce overfitting",
						"To normalize input data",
					},
					Answer:     "To introduce non-linearity into the model",
					Difficulty: "medium",
				},
				{
					Question:   "Which algorithm is commonly used for dimensionality reduction?",
					Options:    []string{"PCA", "K-Means", "Random Forest", "Logistic Regression"},
					Answer:     "PCA",
					Difficulty: "medium",
				},
				{
					Question: "What does 'overfitting' mean in machine learning?",
					Options: []string{
						"Model performs well on training but poorly on test data",
						"Model performs poorly on both training and test data",
						"Model is too simple",
						"Training takes too long",
					},
					Answer:     "Model performs well on training but poorly on test data",
					Difficulty: "easy",
				},
			},
			Short: []string{
				"Explain the difference between supervised and unsupervised learning with examples.",
				"What is gradient descent and why is it important in training neural networks?",
				"Describe the bias-variance tradeoff in machine learning.",
			},
			Coding: []string{
				"Write a Python function to implement linear regression from scratch using gradient descent.",
				"Implement a function to calculate accuracy, precision, and recall given true labels and predictions.",
				"Write code to normalize a numpy array using min-max scaling.",
			},
		},
		"Full Stack Developer": {
			MCQ: []mcqEntry{
				{
					Question:   "Which HTTP method is idempotent?",
					Options:    []string{"POST", "GET", "PATCH", "All of the above"},
					Answer:     "GET",
					Difficulty: "medium",
				},
				{
					Question: "What does REST stand for?",
					Options: []string{
						"Representational State Transfer",
						"Remote Execution State Transfer",
						"Rapid State Transition",
						"Resource State Transfer",
					},
					Answer:     "Representational State Transfer",
					Difficulty: "easy",
				},
			},
			Short: []string{
				"Explain the difference between SQL and NoSQL databases with use cases.",
				"What is CORS and why is it important in web development?",
				"Describe the Model-View-Controller (MVC) architecture pattern.",
			},
			Coding: []string{
				"Write a SQL query to find the second highest salary from an Employee table.",
				"Implement a simple REST API endpoint in any framework to create and retrieve users.",
				"Write JavaScript code to debounce a search input function.",
			},
		},
		"Python Developer": {
			MCQ: []mcqEntry{
				{
					Question:   "What is the output of: print(type([]) == list)?",
					Options:    []string{"True", "False", "Error", "None"},
					Answer:     "True",
					Difficulty: "easy",
				},
				{
					Question:   "Which Python data structure is mutable and ordered?",
					Options:    []string{"Tuple", "List", "Set", "Dictionary"},
					Answer:     "List",
					Difficulty: "easy",
				},
			},
			Short: []string{
				"Explain the difference between list, tuple, and set in Python.",
				"What are decorators in Python and how do you use them?",
				"Describe Python's GIL (Global Interpreter Lock) and its implications.",
			},
			Coding: []string{
				"Write a Python function to find all prime numbers up to N using the Sieve of Eratosthenes.",
				"Implement a function to check if two strings are anagrams.",
				"Write code to reverse a linked list in Python.",
			},
		},
		"Data Science": {
			MCQ: []mcqEntry{
				{
					Question: "What is the purpose of cross-validation?",
					Options: []string{
						"To assess model performance on unseen data",
						"To speed up training",
						"To reduce features",
						"To normalize data",
					},
					Answer:     "To assess model performance on unseen data",
					Difficulty: "medium",
				},
			},
			Short: []string{
				"Explain the difference between correlation and causation.",
				"What is A/B testing and how is it used in data science?",
				"Describe the steps in a typical data science project workflow.",
			},
			Coding: []string{
				"Write Python code using pandas to handle missing values in a dataset.",
				"Implement a function to calculate the Pearson correlation coefficient.",
				"Write code to create a simple linear regression model using scikit-learn.",
			},
		},
	}

	// Web-adjacent tracks reuse a slice of the full-stack bank.
	fs := banks[fallbackRole]
	for _, role := range []string{"Frontend Developer", "Backend Developer", "DevOps Engineer", "JavaScript Developer"} {
		banks[role] = bank{
			MCQ:    fs.MCQ,
			Short:  fs.Short[:2],
			Coding: fs.Coding[:2],
		}
	}
	return banks
}

// Roles returns the interview tracks the bank knows, sorted for stable
// presentation in the role picker.
func Roles() []string {
	roles := make([]string, 0, len(questionBanks))
	for role := range questionBanks {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// PickQuestion selects the next question for a role. The question kind
// rotates with the number of questions already asked: mcq, short answer,
// coding, then around again. Unknown roles fall back to the full-stack
// bank.
func PickQuestion(role string, questionCount int, rng *rand.Rand) interview.Question {
	b, ok := questionBanks[role]
	if !ok {
		b = questionBanks[fallbackRole]
	}

	switch questionCount % 3 {
	case 0:
		q := b.MCQ[rng.Intn(len(b.MCQ))]
		return interview.Question{
			Question: q.Question,
			Type:     interview.TypeMCQ,
			Options:  q.Options,
		}
	case 1:
		return interview.Question{
			Question: b.Short[rng.Intn(len(b.Short))],
			Type:     interview.TypeShort,
		}
	default:
		return interview.Question{
			Question: b.Coding[rng.Intn(len(b.Coding))],
			Type:     interview.TypeCoding,
		}
	}
}
