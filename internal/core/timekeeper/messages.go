package timekeeper

import (
	"math/rand"

	"dreamytimer/internal/core/model"
)

// Shown when a session of the given kind starts.
var greetingMessages = map[model.Kind][]string{
	model.KindWork: {
		"you're doing great",
		"take your time",
		"no pressure, just vibes",
		"one step at a time",
		"you've got this if you want",
	},
	model.KindBreak: {
		"it's okay to pause",
		"you're allowed to rest",
		"breathe and reset 💜",
		"gentle break time",
		"rest is productive too",
	},
}

// Shown when a session of the given kind finishes.
var completionMessages = map[model.Kind][]string{
	model.KindWork: {
		"working at your own pace",
		"being here is enough",
		"you did well ✨",
		"that was great!",
		"proud of you 💜",
	},
	model.KindBreak: {
		"welcome back 💜",
		"ready when you are",
		"no rush, start whenever",
		"feeling a little lighter?",
		"gentle return ✨",
	},
}

var completionHeadlines = map[model.Kind]string{
	model.KindWork:  "Work session complete!\nTime for a break ☕",
	model.KindBreak: "Break complete!\nReady when you are 💜",
}

// CompletionHeadline returns the fixed banner text for a finished session.
func CompletionHeadline(kind model.Kind) string {
	return completionHeadlines[kind]
}

func pickMessage(rng *rand.Rand, messages []string) string {
	if len(messages) == 0 {
		return ""
	}
	return messages[rng.Intn(len(messages))]
}
