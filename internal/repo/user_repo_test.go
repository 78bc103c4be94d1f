package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-helpdesk-backend/internal/domain"
)

func TestGetUser(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "someone", domain.RoleAdmin)

	got, err := GetUser(context.Background(), db, u.ID)
	if err != nil || got.Name != "someone" || got.Role != domain.RoleAdmin {
		t.Fatalf("GetUser: got=%+v err=%v", got, err)
	}

	if _, err := GetUser(context.Background(), db, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAgents_OnlyAgentsOrderedByID(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "admin", domain.RoleAdmin)
	a2 := seedUser(t, db, "agent-two", domain.RoleAgent)
	seedUser(t, db, "customer", domain.RoleCustomer)
	a1 := seedUser(t, db, "agent-one", domain.RoleAgent)

	got, err := ListAgents(context.Background(), db)
	if err != nil {
		t.Fatalf("ListAgents: %v", err)
	}
	if len(got) != 2 || got[0].ID != a2.ID || got[1].ID != a1.ID {
		t.Fatalf("expected agents [%d %d] in id order, got %+v", a2.ID, a1.ID, got)
	}
	for _, u := range got {
		if !u.IsAgent() {
			t.Fatalf("non-agent in ListAgents result: %+v", u)
		}
	}
}

func TestListAgents_Empty(t *testing.T) {
	db := newTestDB(t)
	got, err := ListAgents(context.Background(), db)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty agent list, got=%+v err=%v", got, err)
	}
}
