package cli

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"bms/internal/services"
	"bms/internal/store/storetest"
)

func testOpener(t *testing.T) (Opener, *services.Services) {
	t.Helper()
	svc := services.New(storetest.Open(t))
	svc.Auth.WithCost(bcrypt.MinCost)
	return func(context.Context) (*services.Services, func(), error) {
		return svc, func() {}, nil
	}, svc
}

func run(open Opener, args ...string) (string, error) {
	cmd := CreateCmd(open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSeedIsIdempotent(t *testing.T) {
	open, svc := testOpener(t)

	out, err := run(open, "seed")
	if err != nil || !strings.Contains(out, "sample data loaded") {
		t.Fatalf("first seed: %q, %v", out, err)
	}
	out, err = run(open, "seed")
	if err != nil || !strings.Contains(out, "nothing loaded") {
		t.Fatalf("second seed: %q, %v", out, err)
	}

	n, err := svc.Customers.Count(context.Background())
	if err != nil || n != 4 {
		t.Errorf("customers = %d, %v; want 4", n, err)
	}
}

func TestDeleteCustomer(t *testing.T) {
	open, svc := testOpener(t)
	if _, err := run(open, "seed"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	out, err := run(open, "delete-customer", "customer2")
	if err != nil {
		t.Fatalf("delete-customer: %v", err)
	}
	if !strings.Contains(out, "customer2 deleted") {
		t.Errorf("output = %q", out)
	}
	if a, _ := svc.Accounts.GetAccountByNumber(context.Background(), "INV-002"); a != nil {
		t.Errorf("account of deleted customer still present: %+v", a)
	}

	if _, err := run(open, "delete-customer", "customer2"); err == nil {
		t.Error("deleting an unknown username should fail")
	}
	if _, err := run(open, "delete-customer"); err == nil {
		t.Error("missing argument should fail")
	}
}

func TestApplyInterest(t *testing.T) {
	open, svc := testOpener(t)
	if _, err := run(open, "seed"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	out, err := run(open, "apply-interest")
	if err != nil {
		t.Fatalf("apply-interest: %v", err)
	}
	if !strings.Contains(out, "interest applied to 9 accounts") {
		t.Errorf("output = %q", out)
	}

	inv, err := svc.Accounts.GetAccountByNumber(context.Background(), "INV-001")
	if err != nil || inv == nil {
		t.Fatalf("GetAccountByNumber = %v, %v", inv, err)
	}
	if math.Abs(inv.Balance-1575) > 1e-9 {
		t.Errorf("INV-001 balance = %v, want 1575", inv.Balance)
	}
	chk, _ := svc.Accounts.GetAccountByNumber(context.Background(), "CHK-001")
	if chk.Balance != 1200 {
		t.Errorf("CHK-001 balance = %v, want 1200", chk.Balance)
	}
}

func TestAddEmployee(t *testing.T) {
	open, svc := testOpener(t)

	out, err := run(open, "add-employee",
		"--first-name", "Lesego", "--last-name", "Dube",
		"--email", "lesego@bank.com", "--role", "manager",
		"--username", "lesego", "--password", "s3cret")
	if err != nil {
		t.Fatalf("add-employee: %v", err)
	}
	if !strings.Contains(out, "MANAGER") {
		t.Errorf("output = %q", out)
	}

	p, err := svc.Auth.Authenticate(context.Background(), "lesego", "s3cret")
	if err != nil || p.Employee == nil {
		t.Errorf("login = %+v, %v", p, err)
	}

	if _, err := run(open, "add-employee", "--first-name", "X"); err == nil {
		t.Error("missing required flags should fail")
	}
}

func TestMigrate(t *testing.T) {
	open, _ := testOpener(t)
	out, err := run(open, "migrate")
	if err != nil || !strings.Contains(out, "schema up to date") {
		t.Errorf("migrate = %q, %v", out, err)
	}
}
