// Package sequence synthesizes the non-interactive editor command that
// rewrites a single line of a rebase instruction list.
//
// git normally opens a terminal editor on the instruction list when an
// interactive rebase starts. gitsplit instead supplies a generated
// substitution command through GIT_SEQUENCE_EDITOR, so the instruction for
// exactly one commit is rewritten from "pick" to "edit" or "reword" with
// no human involvement. The command is ephemeral: it is consumed once by
// the rebase invocation that created it and never persisted.
package sequence

import "fmt"

// Action is the rebase instruction a commit's "pick" line is rewritten to.
type Action string

const (
	// ActionEdit stops the rebase after applying the commit so it can be
	// amended or split.
	ActionEdit Action = "edit"

	// ActionReword stops the rebase only to edit the commit message.
	ActionReword Action = "reword"
)

// Instruction identifies the single instruction-list line to rewrite: the
// line that picks Revision becomes the line that applies Action to it.
type Instruction struct {
	Revision string
	Action   Action
}

// Script renders the sed command that performs the substitution. The
// pattern is anchored at the start of the line and includes the space
// after the identifier, so a revision that is a prefix of another
// revision's identifier is never rewritten by mistake.
func (i Instruction) Script() string {
	return fmt.Sprintf("sed -i -e 's/^pick \\(%s \\)/%s \\1/'", i.Revision, i.Action)
}

// EditorEnv renders the environment entry that installs the substitution
// command as the rebase's instruction-list editor.
func (i Instruction) EditorEnv() string {
	return "GIT_SEQUENCE_EDITOR=" + i.Script()
}
