package demo

import (
	"strings"

	"github.com/roach88/hookrt/internal/engine"
	"github.com/roach88/hookrt/internal/host"
)

// Note is one entry in the notes app.
type Note struct {
	ID      int
	Title   string
	Content string
}

// NotesApp owns the note list and the note being edited.
var NotesApp = engine.Define("NotesApp", func(r *engine.Render, props engine.Props) engine.Element {
	notes, setNotes := engine.UseState(r, []Note(nil))
	editing, setEditing := engine.UseState(r, (*Note)(nil))
	nextID := engine.UseRef(r, 1)

	add := engine.UseCallback(r, func(title, content string) {
		n := Note{ID: nextID.Current, Title: title, Content: content}
		nextID.Current++
		setNotes(func(prev []Note) []Note {
			return append(append([]Note(nil), prev...), n)
		})
	}, engine.Deps())

	update := engine.UseCallback(r, func(n Note) {
		setNotes(func(prev []Note) []Note {
			next := make([]Note, len(prev))
			for i, p := range prev {
				if p.ID == n.ID {
					p = n
				}
				next[i] = p
			}
			return next
		})
		setEditing.Set(nil)
	}, engine.Deps())

	remove := engine.UseCallback(r, func(id int) {
		setNotes(func(prev []Note) []Note {
			var next []Note
			for _, p := range prev {
				if p.ID != id {
					next = append(next, p)
				}
			}
			return next
		})
		setEditing(func(cur *Note) *Note {
			if cur != nil && cur.ID == id {
				return nil
			}
			return cur
		})
	}, engine.Deps())

	edit := engine.UseCallback(r, func(n Note) {
		setEditing.Set(&n)
	}, engine.Deps())

	return h("div", engine.Props{"className": "app"},
		h("h1", nil, "Notes"),
		h(NoteForm, engine.Props{"editing": editing, "onAdd": add, "onUpdate": update}),
		h(NotesList, engine.Props{"notes": notes, "onEdit": edit, "onDelete": remove}),
	)
})

// NoteForm adds a note, or updates the one passed as "editing".
var NoteForm = engine.Define("NoteForm", func(r *engine.Render, props engine.Props) engine.Element {
	editing := engine.Prop[*Note](props, "editing")
	onAdd := engine.Prop[func(string, string)](props, "onAdd")
	onUpdate := engine.Prop[func(Note)](props, "onUpdate")

	title, setTitle := engine.UseState(r, "")
	content, setContent := engine.UseState(r, "")

	engine.UseEffect(r, func() func() {
		if editing != nil {
			setTitle.Set(editing.Title)
			setContent.Set(editing.Content)
		} else {
			setTitle.Set("")
			setContent.Set("")
		}
		return nil
	}, engine.Deps(editing))

	submit := func(e *host.Event) {
		e.PreventDefault()
		t, c := strings.TrimSpace(title), strings.TrimSpace(content)
		if t == "" || c == "" {
			return
		}
		if editing != nil {
			onUpdate(Note{ID: editing.ID, Title: t, Content: c})
		} else {
			onAdd(t, c)
		}
		setTitle.Set("")
		setContent.Set("")
	}

	label := "Add Note"
	if editing != nil {
		label = "Update Note"
	}
	return h("form", engine.Props{"className": "note-form", "onSubmit": submit},
		h("input", engine.Props{
			"name":        "title",
			"placeholder": "Title",
			"value":       title,
			"onChange":    func(v string) { setTitle.Set(v) },
		}),
		h("textarea", engine.Props{
			"name":        "content",
			"placeholder": "Content",
			"value":       content,
			"onChange":    func(v string) { setContent.Set(v) },
		}),
		h("button", engine.Props{"type": "submit"}, label),
	)
})

// NotesList renders the notes keyed by ID.
var NotesList = engine.Define("NotesList", func(r *engine.Render, props engine.Props) engine.Element {
	notes := engine.Prop[[]Note](props, "notes")
	if len(notes) == 0 {
		return h("p", engine.Props{"className": "empty"}, "No notes yet. Add one!")
	}
	items := make([]any, 0, len(notes))
	for _, n := range notes {
		items = append(items, h(MemoNoteItem, engine.Props{
			"key":      n.ID,
			"note":     n,
			"onEdit":   props["onEdit"],
			"onDelete": props["onDelete"],
		}))
	}
	return h("ul", engine.Props{"className": "notes"}, items...)
})

// NoteItem shows one note with edit and delete buttons.
var NoteItem = engine.Define("NoteItem", func(r *engine.Render, props engine.Props) engine.Element {
	n := engine.Prop[Note](props, "note")
	onEdit := engine.Prop[func(Note)](props, "onEdit")
	onDelete := engine.Prop[func(int)](props, "onDelete")
	return h("li", engine.Props{"className": "note", "data-id": n.ID},
		h("h3", nil, n.Title),
		h("p", nil, n.Content),
		h("button", engine.Props{"className": "edit", "onClick": func() { onEdit(n) }}, "Edit"),
		h("button", engine.Props{"className": "delete", "onClick": func() { onDelete(n.ID) }}, "Delete"),
	)
})

// MemoNoteItem skips items whose note and callbacks are unchanged.
var MemoNoteItem = engine.Memo(NoteItem, nil)
