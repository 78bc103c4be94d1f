package domain

import "testing"

func TestValidPriority(t *testing.T) {
	for _, p := range []string{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent} {
		if !ValidPriority(p) {
			t.Fatalf("ValidPriority(%q) = false; want true", p)
		}
	}
	for _, p := range []string{"", "critical", "URGENT", "bogus", "norm"} {
		if ValidPriority(p) {
			t.Fatalf("ValidPriority(%q) = true; want false", p)
		}
	}
}

func TestValidStatus(t *testing.T) {
	if !ValidStatus(StatusOpen) || !ValidStatus(StatusClose) {
		t.Fatalf("open/close must be valid statuses")
	}
	for _, s := range []string{"", "closed", "OPEN", "pending"} {
		if ValidStatus(s) {
			t.Fatalf("ValidStatus(%q) = true; want false", s)
		}
	}
}

func TestUser_IsAgent(t *testing.T) {
	cases := []struct {
		role string
		want bool
	}{
		{RoleAgent, true},
		{RoleAdmin, false},
		{RoleCustomer, false},
		{"", false},
	}
	for _, tc := range cases {
		u := &User{Role: tc.role}
		if got := u.IsAgent(); got != tc.want {
			t.Fatalf("IsAgent() with role %q = %v; want %v", tc.role, got, tc.want)
		}
	}
}

func TestTableNames(t *testing.T) {
	if (User{}).TableName() != "users" ||
		(Ticket{}).TableName() != "tickets" ||
		(Category{}).TableName() != "categories" ||
		(Label{}).TableName() != "labels" ||
		(TicketLog{}).TableName() != "ticket_logs" ||
		(Comment{}).TableName() != "comments" ||
		(Attachment{}).TableName() != "attachments" {
		t.Fatalf("unexpected table name mapping")
	}
}
