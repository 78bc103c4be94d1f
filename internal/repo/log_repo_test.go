package repo

import (
	"context"
	"testing"
	"time"

	"github.com/tbourn/go-helpdesk-backend/internal/domain"
)

func TestCreateTicketLog_AppendsRow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	actor := seedUser(t, db, "actor", domain.RoleAdmin)
	owner := seedUser(t, db, "owner", domain.RoleCustomer)
	tk := seedTicket(t, db, owner, "Logged ticket", domain.PriorityNormal, domain.StatusOpen, 0, nil, nil)

	start := time.Now().UTC()
	if err := CreateTicketLog(ctx, db, tk.ID, actor.ID, "updated"); err != nil {
		t.Fatalf("CreateTicketLog: %v", err)
	}

	var got domain.TicketLog
	if err := db.Where("ticket_id = ?", tk.ID).First(&got).Error; err != nil {
		t.Fatalf("load log: %v", err)
	}
	if got.UserID != actor.ID || got.Action != "updated" {
		t.Fatalf("unexpected log row: %+v", got)
	}
	if got.CreatedAt.IsZero() || !got.CreatedAt.After(start.Add(-time.Minute)) {
		t.Fatalf("CreatedAt not set reasonably: %v", got.CreatedAt)
	}
}

func TestListTicketLogs_AscendingAndScoped(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	actor := seedUser(t, db, "actor", domain.RoleAdmin)
	owner := seedUser(t, db, "owner", domain.RoleCustomer)
	tk := seedTicket(t, db, owner, "Busy ticket", domain.PriorityNormal, domain.StatusOpen, 0, nil, nil)
	other := seedTicket(t, db, owner, "Quiet ticket", domain.PriorityNormal, domain.StatusOpen, 0, nil, nil)

	now := time.Now().UTC()
	rows := []domain.TicketLog{
		{TicketID: tk.ID, UserID: actor.ID, Action: "updated", CreatedAt: now.Add(-time.Minute)},
		{TicketID: tk.ID, UserID: actor.ID, Action: "updated", CreatedAt: now.Add(-2 * time.Minute)},
		{TicketID: other.ID, UserID: actor.ID, Action: "updated", CreatedAt: now},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed log: %v", err)
		}
	}

	got, err := ListTicketLogs(ctx, db, tk.ID)
	if err != nil {
		t.Fatalf("ListTicketLogs: %v", err)
	}
	if len(got) != 2 || !got[0].CreatedAt.Before(got[1].CreatedAt) {
		t.Fatalf("expected 2 rows oldest first, got %+v", got)
	}

	n, err := CountTicketLogs(ctx, db, tk.ID)
	if err != nil || n != 2 {
		t.Fatalf("CountTicketLogs: n=%d err=%v", n, err)
	}
}

func TestTicketLogs_SurviveTicketDeletion(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	actor := seedUser(t, db, "actor", domain.RoleAdmin)
	owner := seedUser(t, db, "owner", domain.RoleCustomer)
	tk := seedTicket(t, db, owner, "Short-lived ticket", domain.PriorityNormal, domain.StatusOpen, 0, nil, nil)

	if err := CreateTicketLog(ctx, db, tk.ID, actor.ID, "updated"); err != nil {
		t.Fatalf("CreateTicketLog: %v", err)
	}
	if _, err := DeleteTicket(ctx, db, tk.ID); err != nil {
		t.Fatalf("DeleteTicket: %v", err)
	}

	// Orphaned audit history remains readable.
	got, err := ListTicketLogs(ctx, db, tk.ID)
	if err != nil || len(got) != 1 {
		t.Fatalf("audit rows should survive deletion: got=%+v err=%v", got, err)
	}
}
