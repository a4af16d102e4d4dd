package main

import (
	"time"

	"github.com/bodul/crosswords/puzzle"
)

// WordJSON is the wire form of a placed word.
type WordJSON struct {
	X           uint               `json:"x"`
	Y           uint               `json:"y"`
	Orientation puzzle.Orientation `json:"orientation"` // "H" or "V"
	Text        string             `json:"text"`
	Author      string             `json:"author,omitempty"`
}

// Word converts the wire form into an engine word. It fails when the word
// would run past the coordinate range.
func (wj WordJSON) Word() (puzzle.Word, error) {
	return puzzle.MakeWord(wj.X, wj.Y, wj.Orientation, wj.Text)
}

func toWordJSON(w puzzle.Word, author string) WordJSON {
	return WordJSON{
		X:           w.Start().X,
		Y:           w.Start().Y,
		Orientation: w.Orientation(),
		Text:        w.Text(),
		Author:      author,
	}
}

// BoundsJSON is the inclusive bounding box of a puzzle's words.
type BoundsJSON struct {
	Left   uint `json:"left"`
	Top    uint `json:"top"`
	Right  uint `json:"right"`
	Bottom uint `json:"bottom"`
}

// PuzzleView is a read-only snapshot of a puzzle as sent to clients.
type PuzzleView struct {
	ID         string      `json:"id"`
	Name       string      `json:"name,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	Words      []WordJSON  `json:"words"`
	Horizontal int         `json:"horizontal"`
	Vertical   int         `json:"vertical"`
	Width      uint        `json:"width"`
	Height     uint        `json:"height"`
	Bounds     *BoundsJSON `json:"bounds,omitempty"`
}

func toWords(in []WordJSON) ([]puzzle.Word, error) {
	out := make([]puzzle.Word, len(in))
	for i, wj := range in {
		w, err := wj.Word()
		if err != nil {
			return nil, err
		}
		out[i] = w
	}
	return out, nil
}
