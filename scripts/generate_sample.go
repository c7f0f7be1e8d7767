package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	mrand "math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mithrel/inkleaf/internal/notes"
	"github.com/mithrel/inkleaf/internal/storage"
	"github.com/mithrel/inkleaf/pkg/models"
)

var topics = []string{"groceries", "meeting", "reading list", "ideas", "travel", "recipes", "workout", "journal"}

func main() {
	url := flag.String("url", "file://./sample-data", "storage URL to seed")
	total := flag.Int("n", 200, "number of notes")
	flag.Parse()

	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))
	base := time.Now()

	out := make(notes.Collection, 0, *total)
	for i := 0; i < *total; i++ {
		id, err := uuid.NewRandomFromReader(mr)
		if err != nil {
			log.Fatal(err)
		}
		topic := topics[mr.Intn(len(topics))]
		out = append(out, models.Note{
			ID:        id.String(),
			Title:     fmt.Sprintf("%s %03d", strings.ToUpper(topic[:1])+topic[1:], i+1),
			Content:   sampleBody(mr, topic),
			CreatedAt: base.Add(-time.Duration(30*i+mr.Intn(60)) * time.Minute).Truncate(time.Second),
		})
	}

	ctx := context.Background()
	s, closer, err := storage.Open(ctx, *url)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()
	if err := storage.SaveNotes(ctx, s, out); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %d notes to %s\n", len(out), *url)
}

func sampleBody(r *mrand.Rand, topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\nSome **%s** notes.\n\n", topic, topic)
	for i, k := 0, 1+r.Intn(4); i < k; i++ {
		fmt.Fprintf(&b, "- item %d\n", r.Intn(100))
	}
	if r.Float64() < 0.2 {
		b.WriteString("\n<script>alert('stripped on render')</script>\n")
	}
	return b.String()
}
