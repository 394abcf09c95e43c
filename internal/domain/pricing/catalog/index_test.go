package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/types"
)

func TestIndexLookup(t *testing.T) {
	idx := NewIndex(nil)
	idx.Install([]Row{
		{Category: "INGLESINA", Model: "CLASSICA", Size: "STD", Finish: "STD", Code: "S001", Price: types.MustMoney("5.00")},
		{Category: "INGLESINA", Model: "CLASSICA", Size: "STD", Finish: "ORO", Code: "S003", Price: types.MustMoney("3.20")},
	})

	ctx := context.Background()
	if got := idx.Lookup(ctx, "S001"); !got.Equal(types.MustMoney("5.00")) {
		t.Errorf("Lookup(S001) = %s, want 5.00", got)
	}
	// Lookup normalizes case and whitespace.
	if got := idx.Lookup(ctx, " s003 "); !got.Equal(types.MustMoney("3.20")) {
		t.Errorf("Lookup(' s003 ') = %s, want 3.20", got)
	}
}

func TestIndexUnmappedCodeIsZeroAndCounted(t *testing.T) {
	idx := NewIndex(nil)
	idx.Install([]Row{{Category: "X", Model: "Y", Code: "S001", Price: types.MustMoney("1")}})

	ctx := context.Background()
	if got := idx.Lookup(ctx, "ZZZ999"); !got.IsZero() {
		t.Errorf("Lookup(ZZZ999) = %s, want 0", got)
	}
	idx.Lookup(ctx, "ZZZ998")
	if got := idx.Misses(); got != 2 {
		t.Errorf("Misses() = %d, want 2", got)
	}
	// Hits do not count.
	idx.Lookup(ctx, "S001")
	if got := idx.Misses(); got != 2 {
		t.Errorf("Misses() after hit = %d, want 2", got)
	}
}

func TestIndexNotLoaded(t *testing.T) {
	idx := NewIndex(nil)

	if idx.Loaded() {
		t.Fatal("fresh index reports loaded")
	}
	if got := idx.Lookup(context.Background(), "S001"); !got.IsZero() {
		t.Errorf("Lookup on unloaded index = %s, want 0", got)
	}
	// An unloaded index does not count misses: nothing is mapped yet.
	if got := idx.Misses(); got != 0 {
		t.Errorf("Misses() on unloaded index = %d, want 0", got)
	}
}

func TestIndexLastRowWins(t *testing.T) {
	idx := NewIndex(nil)
	idx.Install([]Row{
		{Category: "X", Model: "Y", Code: "S001", Price: types.MustMoney("1")},
		{Category: "X", Model: "Y", Code: "S001", Price: types.MustMoney("2")},
	})

	if got := idx.Lookup(context.Background(), "S001"); !got.Equal(types.MustMoney("2")) {
		t.Errorf("Lookup(S001) = %s, want 2 (last row wins)", got)
	}
	if got := idx.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestIndexBrowseTree(t *testing.T) {
	idx := NewIndex(nil)
	idx.Install([]Row{
		{Category: "INGLESINA", Model: "CLASSICA", Size: "STD", Finish: "STD", FinishGroup: "Altro", Code: "A100", Price: types.MustMoney("12.50")},
		{Category: "INGLESINA", Model: "CLASSICA", Size: "STD", Finish: "ORO", FinishGroup: "Metallo", Code: "A101", Price: types.MustMoney("15.00")},
		{Category: "CANALINO", Model: "C211", Size: "STD", Finish: "STD", FinishGroup: "Altro", Code: "C211", Price: types.MustMoney("2.50")},
	})

	tree := idx.BrowseTree()
	entry, ok := tree["INGLESINA"]["CLASSICA"]["STD"]["ORO"]
	if !ok {
		t.Fatal("expected INGLESINA/CLASSICA/STD/ORO in browse tree")
	}
	if entry.Code != "A101" || entry.Group != "Metallo" || !entry.Price.Equal(types.MustMoney("15.00")) {
		t.Errorf("entry = %+v, want A101/Metallo/15.00", entry)
	}
	if len(tree) != 2 {
		t.Errorf("tree has %d categories, want 2", len(tree))
	}
}

func TestParseCSV(t *testing.T) {
	feed := strings.Join([]string{
		"CATEGORIA,TIPO,DIMENSIONE,FINITURA,TIPO_FINITURA,CODICE,PREZZO",
		"Inglesina,Classica,,Oro,Metallo,a100,\"€ 12,50\"",
		"Inglesina,Classica,40x20,,,A101,15.00",
		",,,,,,", // empty row: no code, skipped
		"Canalino,C211,STD,STD,,C211,\"1,2,3\"", // unparseable price, skipped
	}, "\n")

	rows, err := ParseCSV(strings.NewReader(feed))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first.Category != "INGLESINA" || first.Model != "CLASSICA" || first.Code != "A100" {
		t.Errorf("row 0 keys = %s/%s/%s, want uppercased", first.Category, first.Model, first.Code)
	}
	if first.Size != "STD" || first.Finish != "ORO" || first.FinishGroup != "Metallo" {
		t.Errorf("row 0 = %+v, want defaulted size, ORO finish, Metallo group", first)
	}
	if !first.Price.Equal(types.MustMoney("12.50")) {
		t.Errorf("row 0 price = %s, want 12.50 (localized parse)", first.Price)
	}

	second := rows[1]
	if second.Size != "40X20" || second.Finish != "STD" || second.FinishGroup != "Altro" {
		t.Errorf("row 1 = %+v, want 40X20/STD/Altro", second)
	}
}

func TestParseCSVHeaderAliases(t *testing.T) {
	feed := "INGLESINE,MODELLO,CODICE,PREZZO\nInglesina,Nuova,B200,\"7,00\"\n"

	rows, err := ParseCSV(strings.NewReader(feed))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 1 || rows[0].Model != "NUOVA" || !rows[0].Price.Equal(types.MustMoney("7.00")) {
		t.Fatalf("rows = %+v, want one NUOVA row priced 7.00", rows)
	}
}

func TestParseCSVByteOrderMark(t *testing.T) {
	// Excel exports prepend a UTF-8 BOM; it must not break the first
	// header name.
	feed := "\ufeffCATEGORIA,TIPO,CODICE,PREZZO\nInglesina,Nuova,B200,\"7,00\"\n"

	rows, err := ParseCSV(strings.NewReader(feed))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 1 || rows[0].Category != "INGLESINA" {
		t.Fatalf("rows = %+v, want one INGLESINA row", rows)
	}
}

func TestParseCSVMissingColumn(t *testing.T) {
	feed := "CATEGORIA,TIPO,PREZZO\nA,B,1\n"
	if _, err := ParseCSV(strings.NewReader(feed)); err == nil {
		t.Fatal("expected error for feed without CODICE column")
	}
}
