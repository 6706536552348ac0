package knowledge

import (
	"bytes"
	"encoding/gob"
)

/*
Gob support, so a Knowledge value can ride along inside a persisted
solver session. Sets and sentences travel as flat slices.
*/

type sentenceSnapshot struct {
	Cells []Cell
	Count int
}

type knowledgeSnapshot struct {
	Height, Width int
	Moves         []Cell
	Mines         []Cell
	Safes         []Cell
	Sentences     []sentenceSnapshot
}

// GobEncode implements [gob.GobEncoder].
func (k *Knowledge) GobEncode() ([]byte, error) {
	snap := knowledgeSnapshot{
		Height: k.height,
		Width:  k.width,
		Moves:  sortedCells(k.moves),
		Mines:  sortedCells(k.mines),
		Safes:  sortedCells(k.safes),
	}
	for _, s := range k.sentences {
		if s.Empty() {
			continue
		}
		snap.Sentences = append(snap.Sentences, sentenceSnapshot{
			Cells: s.Cells(),
			Count: s.Count(),
		})
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements [gob.GobDecoder].
func (k *Knowledge) GobDecode(data []byte) error {
	var snap knowledgeSnapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return err
	}
	*k = *New(snap.Height, snap.Width)
	for _, c := range snap.Moves {
		k.moves[c] = struct{}{}
	}
	for _, c := range snap.Mines {
		k.mines[c] = struct{}{}
	}
	for _, c := range snap.Safes {
		k.safes[c] = struct{}{}
	}
	for _, snt := range snap.Sentences {
		s, err := NewSentence(snt.Cells, snt.Count)
		if err != nil {
			return err
		}
		k.sentences = append(k.sentences, s)
	}
	return nil
}
