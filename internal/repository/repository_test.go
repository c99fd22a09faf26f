package repository_test

import (
	"errors"
	"testing"

	"flashcard_app/internal/domain"
	"flashcard_app/internal/repository"
	"flashcard_app/internal/testutil"

	"gorm.io/gorm"
)

func TestUserUniqueness(t *testing.T) {
	db := testutil.SetupTestDB(t)

	if err := repository.CreateUser(db, &domain.User{Username: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	// The unique constraints surface as a typed duplicate-key error
	err := repository.CreateUser(db, &domain.User{Username: "alice", Email: "other@example.com"})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("duplicate username error = %v, want gorm.ErrDuplicatedKey", err)
	}
	err = repository.CreateUser(db, &domain.User{Username: "bob", Email: "alice@example.com"})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("duplicate email error = %v, want gorm.ErrDuplicatedKey", err)
	}

	taken, err := repository.UserExistsByEmail(db, "alice@example.com")
	if err != nil || !taken {
		t.Errorf("UserExistsByEmail = %v, %v, want true, nil", taken, err)
	}
	taken, err = repository.UserExistsByUsername(db, "nobody")
	if err != nil || taken {
		t.Errorf("UserExistsByUsername = %v, %v, want false, nil", taken, err)
	}
}

func TestDeckDeleteCascadesToFlashcards(t *testing.T) {
	db := testutil.SetupTestDB(t)

	deck := domain.Deck{Title: "Spanish"}
	if err := repository.CreateDeck(db, &deck); err != nil {
		t.Fatalf("failed to create deck: %v", err)
	}
	for _, front := range []string{"hola", "adios"} {
		if err := repository.CreateFlashcard(db, &domain.Flashcard{Front: front, Back: "x", DeckID: deck.ID}); err != nil {
			t.Fatalf("failed to create flashcard: %v", err)
		}
	}

	if err := repository.DeleteDeck(db, deck.ID); err != nil {
		t.Fatalf("failed to delete deck: %v", err)
	}

	count, err := repository.CountFlashcardsByDeckID(db, deck.ID)
	if err != nil {
		t.Fatalf("failed to count flashcards: %v", err)
	}
	if count != 0 {
		t.Errorf("flashcard count after cascade = %d, want 0", count)
	}
	if _, err := repository.FindDeckByID(db, deck.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("deck lookup error = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestCountFlashcardsByDeckID(t *testing.T) {
	db := testutil.SetupTestDB(t)

	a := domain.Deck{Title: "A"}
	b := domain.Deck{Title: "B"}
	if err := repository.CreateDeck(db, &a); err != nil {
		t.Fatalf("failed to create deck: %v", err)
	}
	if err := repository.CreateDeck(db, &b); err != nil {
		t.Fatalf("failed to create deck: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := repository.CreateFlashcard(db, &domain.Flashcard{Front: "f", Back: "b", DeckID: a.ID}); err != nil {
			t.Fatalf("failed to create flashcard: %v", err)
		}
	}

	count, err := repository.CountFlashcardsByDeckID(db, a.ID)
	if err != nil || count != 3 {
		t.Errorf("count for deck A = %d, %v, want 3, nil", count, err)
	}
	count, err = repository.CountFlashcardsByDeckID(db, b.ID)
	if err != nil || count != 0 {
		t.Errorf("count for deck B = %d, %v, want 0, nil", count, err)
	}
}
