package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lernapp-2025/studycards-v3/internal/card"
	"github.com/lernapp-2025/studycards-v3/internal/config"
	"github.com/lernapp-2025/studycards-v3/internal/database"
	"github.com/lernapp-2025/studycards-v3/internal/testutil"
)

func seedCard(t *testing.T, c *cli) {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{Driver: database.DriverSQLite, Path: c.dbPath})
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	testutil.SeedCardSet(t, db, "s1", "Vokabeln", "test-user")
	testutil.SeedFlashcard(t, db, "c1", "s1",
		`{"elements":[`+
			`{"id":"word","type":"text","content":"el perro","position":{"x":30,"y":60},"size":{"width":240,"height":40},"rotation":0,"zIndex":2},`+
			`{"id":"photo","type":"image","content":"https://example.com/dog.png","position":{"x":0,"y":0},"size":{"width":150,"height":100},"rotation":90,"zIndex":1}`+
			`]}`,
		"")
}

func TestCardsShow(t *testing.T) {
	c := newCLI(t)
	seedCard(t, c)

	out := c.mustRun("cards", "show", "c1")
	assert.Equal(t, ""+
		"Z  ID     TYPE   POSITION  SIZE     ROTATION  CONTENT\n"+
		"1  photo  image  0,0       150x100  90        https://example.com/dog.png\n"+
		"2  word   text   30,60     240x40   0         el perro\n", out)

	assert.Equal(t, "The back face is empty.\n", c.mustRun("cards", "show", "c1", "--side", "back"))

	_, err := c.run("cards", "show", "c1", "--side", "middle")
	assert.ErrorIs(t, err, card.ErrUnknownSide)

	_, err = c.run("--user", "someone-else", "cards", "show", "c1")
	assert.ErrorIs(t, err, card.ErrNotFound)
}

func TestCardsLayout(t *testing.T) {
	c := newCLI(t)
	seedCard(t, c)

	out := c.mustRun("cards", "layout", "c1")

	var placements []card.Placement
	require.NoError(t, json.Unmarshal([]byte(out), &placements))
	require.Len(t, placements, 2)

	assert.Equal(t, "photo", placements[0].ID)
	assert.Equal(t, "rotate(90deg)", placements[0].Transform)
	assert.Nil(t, placements[0].Text)

	word := placements[1]
	assert.Equal(t, "word", word.ID)
	assert.InDelta(t, 10.0, word.Box.Left, 1e-9)
	assert.InDelta(t, 30.0, word.Box.Top, 1e-9)
	assert.InDelta(t, 80.0, word.Box.Width, 1e-9)
	assert.InDelta(t, 20.0, word.Box.Height, 1e-9)
	require.NotNil(t, word.Text)
}
