package services

import (
	"math/rand"

	"github.com/quizmize/backend/internal/types"
)

// Built-in bank drawn from when a group starts a system mission. Questions
// are copied into the mission at creation so later bank edits never change
// a running mission.
var systemQuestionBank = []types.MissionQuestion{
	{
		Text:          "Which study technique involves recalling material from memory rather than re-reading it?",
		Choices:       []string{"Active recall", "Highlighting", "Skimming", "Transcribing"},
		CorrectAnswer: 0,
		Explanation:   "Active recall strengthens memory far more than passive review.",
	},
	{
		Text:          "Spacing reviews over increasing intervals is known as what?",
		Choices:       []string{"Cramming", "Spaced repetition", "Chunking", "Interleaving"},
		CorrectAnswer: 1,
		Explanation:   "Spaced repetition schedules reviews just before you are likely to forget.",
	},
	{
		Text:          "What does the Pomodoro technique alternate between?",
		Choices:       []string{"Subjects", "Focused work and short breaks", "Reading and writing", "Solo and group study"},
		CorrectAnswer: 1,
		Explanation:   "Classic Pomodoro is 25 minutes of focus followed by a 5 minute break.",
	},
	{
		Text:          "Explaining a topic in simple terms to find gaps in understanding is called what?",
		Choices:       []string{"The Feynman technique", "Mind mapping", "Speed reading", "Shadowing"},
		CorrectAnswer: 0,
		Explanation:   "If you cannot explain it simply, you have found what to study next.",
	},
	{
		Text:          "Mixing different problem types in one practice session is known as what?",
		Choices:       []string{"Blocking", "Interleaving", "Massing", "Drilling"},
		CorrectAnswer: 1,
		Explanation:   "Interleaved practice improves the ability to pick the right method.",
	},
	{
		Text:          "Which of these is a retrieval practice activity?",
		Choices:       []string{"Re-reading notes", "Watching a lecture twice", "Taking a practice test", "Copying the textbook"},
		CorrectAnswer: 2,
		Explanation:   "Practice testing is one of the highest-utility study techniques.",
	},
	{
		Text:          "Breaking information into meaningful units to remember it better is called what?",
		Choices:       []string{"Chunking", "Priming", "Anchoring", "Scaffolding"},
		CorrectAnswer: 0,
		Explanation:   "Chunking reduces load on working memory.",
	},
	{
		Text:          "What is the testing effect?",
		Choices:       []string{"Tests cause anxiety", "Testing improves long-term retention", "Tests measure intelligence", "Testing shortens study time"},
		CorrectAnswer: 1,
		Explanation:   "Being tested on material strengthens memory for it.",
	},
	{
		Text:          "Connecting new material to things you already know is called what?",
		Choices:       []string{"Rote learning", "Elaboration", "Repetition", "Dictation"},
		CorrectAnswer: 1,
		Explanation:   "Elaborative encoding builds more retrieval paths.",
	},
	{
		Text:          "Which sleep habit most supports memory consolidation?",
		Choices:       []string{"All-nighters before exams", "Consistent full nights of sleep", "Short naps only", "Sleeping right after waking"},
		CorrectAnswer: 1,
		Explanation:   "Consolidation happens during sleep; consistency beats cramming.",
	},
	{
		Text:          "Writing a summary of a chapter from memory is an example of what?",
		Choices:       []string{"Passive review", "Free recall", "Skimming", "Annotation"},
		CorrectAnswer: 1,
		Explanation:   "Free recall forces retrieval without cues.",
	},
	{
		Text:          "What does metacognition mean in the context of studying?",
		Choices:       []string{"Memorizing faster", "Thinking about your own learning", "Group discussion", "Reading ahead"},
		CorrectAnswer: 1,
		Explanation:   "Monitoring what you do and do not understand guides study time.",
	},
	{
		Text:          "Which environment change tends to improve focused study?",
		Choices:       []string{"Multiple open tabs", "Phone on the desk", "Removing distractions before starting", "Background TV"},
		CorrectAnswer: 2,
		Explanation:   "Attention residue from distractions lowers the quality of study time.",
	},
	{
		Text:          "Testing yourself before learning new material, even when you fail, does what?",
		Choices:       []string{"Wastes time", "Primes later learning", "Causes confusion", "Nothing measurable"},
		CorrectAnswer: 1,
		Explanation:   "Pretesting improves encoding of the correct answer afterwards.",
	},
	{
		Text:          "Which goal is the best formed study goal?",
		Choices:       []string{"Study more", "Do well", "Solve 10 integration problems before noon", "Read everything"},
		CorrectAnswer: 2,
		Explanation:   "Specific, measurable, time-bound goals get done.",
	},
	{
		Text:          "What is the spacing effect?",
		Choices:       []string{"Learning spread over time beats massed practice", "Bigger margins help reading", "Breaks hurt momentum", "Short sessions are useless"},
		CorrectAnswer: 0,
		Explanation:   "The same hours spread out produce stronger retention than one block.",
	},
	{
		Text:          "Using mnemonic devices helps primarily with what?",
		Choices:       []string{"Understanding concepts", "Encoding hard-to-remember facts", "Writing essays", "Time management"},
		CorrectAnswer: 1,
		Explanation:   "Mnemonics attach hooks to otherwise arbitrary material.",
	},
	{
		Text:          "Studying in a group is most effective when members do what?",
		Choices:       []string{"Quiz each other", "Share notes silently", "Divide and never discuss", "Only review together"},
		CorrectAnswer: 0,
		Explanation:   "Peer quizzing is retrieval practice with feedback.",
	},
	{
		Text:          "What is the forgetting curve?",
		Choices:       []string{"Grades over a semester", "Decline of memory over time without review", "Difficulty ranking of topics", "Reading speed decline"},
		CorrectAnswer: 1,
		Explanation:   "Ebbinghaus showed memory decays rapidly without reinforcement.",
	},
	{
		Text:          "Which note-taking approach supports later self-testing best?",
		Choices:       []string{"Verbatim transcription", "Cue column with questions", "Photographs of slides", "No notes"},
		CorrectAnswer: 1,
		Explanation:   "Question-based notes turn review into retrieval practice.",
	},
	{
		Text:          "Alternating study locations can do what for recall?",
		Choices:       []string{"Hurt it badly", "Strengthen it through varied context", "Nothing", "Only help visual learners"},
		CorrectAnswer: 1,
		Explanation:   "Varied context builds retrieval cues that do not depend on one room.",
	},
	{
		Text:          "What is deliberate practice?",
		Choices:       []string{"Repeating what you are good at", "Focused work on specific weaknesses with feedback", "Practicing daily", "Practicing until tired"},
		CorrectAnswer: 1,
		Explanation:   "Targeting weaknesses at the edge of ability drives improvement.",
	},
	{
		Text:          "Why are flashcards effective when used correctly?",
		Choices:       []string{"They are colorful", "They force retrieval and allow spacing", "They summarize chapters", "They replace reading"},
		CorrectAnswer: 1,
		Explanation:   "Each card is a retrieval attempt that can be scheduled over time.",
	},
	{
		Text:          "Reviewing mistakes on a practice test is valuable because it does what?",
		Choices:       []string{"Lowers confidence", "Targets exactly what you got wrong", "Takes less time", "Replaces new material"},
		CorrectAnswer: 1,
		Explanation:   "Error analysis converts failures into the next study plan.",
	},
	{
		Text:          "Which behavior indicates an illusion of competence?",
		Choices:       []string{"Recalling without notes", "Feeling fluent while re-reading highlighted text", "Scoring well on practice tests", "Teaching a peer successfully"},
		CorrectAnswer: 1,
		Explanation:   "Recognition feels like knowing; retrieval proves it.",
	},
	{
		Text:          "What is the generation effect?",
		Choices:       []string{"Creating answers yourself beats reading them", "Younger students learn faster", "Group study generates ideas", "Notes improve with each rewrite"},
		CorrectAnswer: 0,
		Explanation:   "Self-generated answers are remembered better than provided ones.",
	},
	{
		Text:          "Why does highlighting alone rank poorly as a study technique?",
		Choices:       []string{"It damages books", "It marks text without requiring retrieval", "It is too slow", "It only works in print"},
		CorrectAnswer: 1,
		Explanation:   "Marking text is not the same as recalling it.",
	},
	{
		Text:          "Which break activity best restores focus between study blocks?",
		Choices:       []string{"Scrolling social media", "A short walk away from screens", "Starting a show", "Checking email"},
		CorrectAnswer: 1,
		Explanation:   "Low-stimulation breaks let attention recover instead of redirecting it.",
	},
	{
		Text:          "What is the best first step when a practice problem is completely unfamiliar?",
		Choices:       []string{"Skip it permanently", "Look up the full solution immediately", "Attempt it before checking the solution", "Memorize the answer"},
		CorrectAnswer: 2,
		Explanation:   "A genuine attempt, even a failed one, primes learning from the solution.",
	},
	{
		Text:          "Distributing one subject across the week instead of one marathon day is an example of what?",
		Choices:       []string{"Procrastination", "Spacing", "Blocking", "Cramming"},
		CorrectAnswer: 1,
		Explanation:   "Spaced sessions beat a single massed session of the same length.",
	},
	{
		Text:          "What does dual coding combine?",
		Choices:       []string{"Two textbooks", "Words and visuals", "Morning and evening study", "Reading and music"},
		CorrectAnswer: 1,
		Explanation:   "Pairing verbal material with diagrams builds two retrieval routes.",
	},
	{
		Text:          "When is the ideal time to review material according to spaced repetition?",
		Choices:       []string{"Immediately after learning it", "Just before you would forget it", "Only the night before the exam", "At fixed daily times"},
		CorrectAnswer: 1,
		Explanation:   "Reviews timed near the point of forgetting strengthen memory most.",
	},
	{
		Text:          "What is interleaving most likely to improve?",
		Choices:       []string{"Reading speed", "Choosing the right method for a problem", "Handwriting", "Note length"},
		CorrectAnswer: 1,
		Explanation:   "Mixing problem types trains discrimination between methods.",
	},
	{
		Text:          "Which habit best combats procrastination on large assignments?",
		Choices:       []string{"Waiting for motivation", "Breaking the work into small concrete tasks", "Doubling the deadline pressure", "Working only when inspired"},
		CorrectAnswer: 1,
		Explanation:   "Small defined tasks remove the ambiguity that feeds avoidance.",
	},
	{
		Text:          "Self-explanation while working through an example means doing what?",
		Choices:       []string{"Reading it aloud", "Explaining why each step follows from the last", "Copying it twice", "Summarizing the chapter"},
		CorrectAnswer: 1,
		Explanation:   "Explaining the reasoning exposes gaps that copying hides.",
	},
	{
		Text:          "Why should practice tests be taken under timed conditions?",
		Choices:       []string{"To finish faster", "To match the retrieval conditions of the real exam", "To reduce grading time", "Timing is irrelevant"},
		CorrectAnswer: 1,
		Explanation:   "Retrieval practiced under exam conditions transfers best to the exam.",
	},
	{
		Text:          "What is cognitive load management in studying?",
		Choices:       []string{"Avoiding hard topics", "Limiting how much new information competes for working memory", "Studying longer hours", "Using more resources at once"},
		CorrectAnswer: 1,
		Explanation:   "Working memory is small; pacing new material keeps it usable.",
	},
}

const systemQuestionsPerDay = 5

// drawSystemQuestions copies a shuffled selection out of the bank sized by
// the mission duration.
func drawSystemQuestions(duration int) []types.MissionQuestion {
	want := duration * systemQuestionsPerDay
	if want > len(systemQuestionBank) {
		want = len(systemQuestionBank)
	}
	idx := rand.Perm(len(systemQuestionBank))
	picked := make([]types.MissionQuestion, 0, want)
	for _, i := range idx[:want] {
		picked = append(picked, systemQuestionBank[i])
	}
	return picked
}
