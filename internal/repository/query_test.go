package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/broadcastcontacts/backend/internal/model"
)

func TestWhereBuilder_EmptyBuildsNothing(t *testing.T) {
	where, args := NewWhereBuilder().AddIn(colHeading, nil).Build()
	if where != "" || args != nil {
		t.Errorf("expected no clause, got %q %v", where, args)
	}
}

func TestWhereBuilder_AddInOnePlaceholderPerValue(t *testing.T) {
	wb := NewWhereBuilder().AddIn(colHeading, []string{"Sales", "Support", "Ops"})
	where, args := wb.Build()

	want := `WHERE "Heading" IN (?, ?, ?)`
	if where != want {
		t.Errorf("expected %q, got %q", want, where)
	}
	if len(args) != 3 || args[0] != "Sales" || args[2] != "Ops" {
		t.Errorf("unexpected args %v", args)
	}
	if wb.Len() != 1 {
		t.Errorf("expected 1 clause, got %d", wb.Len())
	}
}

func TestBuildContactQuery_NoCriteria(t *testing.T) {
	q, args := BuildContactQuery(DialectPostgres, "BroadcastContact", model.VariantBase, model.ContactFilter{})

	want := `SELECT "ContactName", "Heading", "CreatedAt" FROM "BroadcastContact" ORDER BY "CreatedAt" DESC NULLS LAST, "ContactName"`
	if q != want {
		t.Errorf("expected\n%s\ngot\n%s", want, q)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestBuildContactQuery_PostgresAllCriteria(t *testing.T) {
	d := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)
	q, args := BuildContactQuery(DialectPostgres, "dbo.BroadcastContact", model.VariantExtended, model.ContactFilter{
		ContactNames:  []string{"Asha", "Rita"},
		Headings:      []string{"Sales"},
		MobileNumbers: []string{"9000000001"},
		CreatedDate:   &d,
		Sort:          model.SortHeadingName,
	})

	want := `SELECT "ContactName", "Heading", "MobilePhone", "CreatedAt" FROM "dbo"."BroadcastContact" ` +
		`WHERE "ContactName" IN ($1, $2) AND "Heading" IN ($3) AND "MobilePhone" IN ($4) ` +
		`AND CAST("CreatedAt" AS DATE) = $5 ORDER BY "Heading", "ContactName"`
	if q != want {
		t.Errorf("expected\n%s\ngot\n%s", want, q)
	}
	if len(args) != 5 {
		t.Fatalf("expected 5 args, got %v", args)
	}
	got, ok := args[4].(time.Time)
	if !ok || !got.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected midnight date arg, got %v", args[4])
	}
}

func TestBuildContactQuery_SQLiteDateArgIsCalendarString(t *testing.T) {
	d := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	q, args := BuildContactQuery(DialectSQLite, "BroadcastContact", model.VariantBase, model.ContactFilter{CreatedDate: &d})

	if !strings.Contains(q, `WHERE date("CreatedAt") = ?`) {
		t.Errorf("expected sqlite date comparison, got %s", q)
	}
	if len(args) != 1 || args[0] != "2024-05-01" {
		t.Errorf("expected [2024-05-01], got %v", args)
	}
}

func TestBuildContactQuery_BaseVariantDropsMobileCriterion(t *testing.T) {
	q, args := BuildContactQuery(DialectDuckDB, "BroadcastContact", model.VariantBase, model.ContactFilter{
		MobileNumbers: []string{"9000000001"},
	})
	if strings.Contains(q, "MobilePhone") {
		t.Errorf("base query must not reference MobilePhone: %s", q)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestBuildContactQuery_ValuesNeverInSQLText(t *testing.T) {
	evil := `'; DROP TABLE "BroadcastContact"; --`
	q, args := BuildContactQuery(DialectPostgres, "BroadcastContact", model.VariantExtended, model.ContactFilter{
		ContactNames: []string{evil},
		Headings:     []string{evil},
	})
	if strings.Contains(q, "DROP") {
		t.Errorf("value leaked into SQL: %s", q)
	}
	if len(args) != 2 || args[0] != evil {
		t.Errorf("expected value to be bound, got %v", args)
	}
}

func TestBuildDistinctQuery(t *testing.T) {
	got := BuildDistinctQuery("BroadcastContact", colMobilePhone, true)
	want := `SELECT DISTINCT "MobilePhone" FROM "BroadcastContact" WHERE "MobilePhone" IS NOT NULL AND "MobilePhone" <> '' ORDER BY "MobilePhone"`
	if got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}

	got = BuildDistinctQuery("BroadcastContact", colHeading, false)
	if strings.Contains(got, "<> ''") {
		t.Errorf("heading query must not exclude empty strings: %s", got)
	}
}

func TestValidTableName(t *testing.T) {
	for _, name := range []string{"BroadcastContact", "dbo.BroadcastContact", "_v1"} {
		if !ValidTableName(name) {
			t.Errorf("expected %q to be valid", name)
		}
	}
	for _, name := range []string{"", "a.b.c", `Broadcast"Contact`, "x; DROP", "1abc", "a."} {
		if ValidTableName(name) {
			t.Errorf("expected %q to be invalid", name)
		}
	}
}

func TestParseDialect(t *testing.T) {
	cases := map[string]Dialect{
		"postgres": DialectPostgres,
		"pgx":      DialectPostgres,
		"sqlite3":  DialectSQLite,
		"SQLite":   DialectSQLite,
		"duckdb":   DialectDuckDB,
	}
	for in, want := range cases {
		got, err := ParseDialect(in)
		if err != nil || got != want {
			t.Errorf("ParseDialect(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseDialect("mssql"); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
