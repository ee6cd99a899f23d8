package main

import (
	"fmt"

	"github.com/passkeep/passkeep/internal/db"
	"github.com/passkeep/passkeep/internal/i18n"
	"github.com/passkeep/passkeep/internal/model"
)

func main() {
	dsn := "file:debprobe?mode=memory&cache=shared"
	i18n.Init("en")
	if err := db.InitDB("sqlite", dsn); err != nil {
		panic(err)
	}

	seed := []model.VaultEntry{
		{Title: "Email", Username: "user1", Password: "pw-one", Category: "Work"},
		{Title: "Bank", Username: "user2", Password: "pw-two", Category: "Finance"},
		{Title: "Forum", Username: "user3", Password: "pw-three", Category: "Work"},
	}

	mgr := db.DefaultEntryManager()
	if mgr == nil {
		// Fall back to legacy helpers if no manager is configured.
		for _, e := range seed {
			if _, err := db.AddEntry(e); err != nil {
				panic(err)
			}
		}
	} else {
		for _, e := range seed {
			if _, err := mgr.AddEntry(e); err != nil {
				panic(err)
			}
		}
	}

	work, err := db.FilterEntriesByCategory("Work")
	if err != nil {
		panic(err)
	}
	fmt.Printf("work entries: %d\n", len(work))
	for _, e := range work {
		fmt.Printf("entry: id=%d title=%s username=%s category=%s\n", e.ID, e.Title, e.Username, e.Category)
	}

	all, err := db.GetAllEntries()
	if err != nil {
		panic(err)
	}
	fmt.Printf("all entries: %d\n", len(all))
	for _, e := range all {
		fmt.Printf("all entry: id=%d title=%s username=%s category=%s\n", e.ID, e.Title, e.Username, e.Category)
	}
}
