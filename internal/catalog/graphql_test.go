package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGraphQLSearch(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graphql" {
			t.Errorf("path = %s, want /graphql", r.URL.Path)
		}
		var payload struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatal(err)
		}
		gotQuery = payload.Query

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"products":[
			{"id":1,"name":"Trail Jacket","category":"Jacket","price":89.9,"ratingAvg":4.5,
			 "variants":[{"sku":"TJ-1","color":"Blue","size":"M"}]},
			{"id":2,"name":"City Coat","category":"Jacket","price":120}
		]}}`))
	}))
	defer server.Close()

	s := NewGraphQLSearcher(server.URL)
	hits, err := s.Search(context.Background(), "jacket", "jacket", "Blue", 40)
	if err != nil {
		t.Fatal(err)
	}

	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].ID != 1 || hits[0].Rating() != 4.5 || hits[0].Variants[0].Color != "Blue" {
		t.Errorf("first hit decoded wrong: %+v", hits[0])
	}
	if hits[1].RatingAvg != nil {
		t.Errorf("absent ratingAvg should decode to nil, got %v", *hits[1].RatingAvg)
	}

	for _, fragment := range []string{`searchTerm: "jacket"`, `color: "Blue"`, "limit: 40"} {
		if !strings.Contains(gotQuery, fragment) {
			t.Errorf("query missing %q:\n%s", fragment, gotQuery)
		}
	}
}

func TestGraphQLSearchStripsQuotes(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Query string `json:"query"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		gotQuery = payload.Query
		_, _ = w.Write([]byte(`{"data":{"products":[]}}`))
	}))
	defer server.Close()

	s := NewGraphQLSearcher(server.URL)
	if _, err := s.Search(context.Background(), `jack"et`, "", "", 10); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(gotQuery, `searchTerm: "jacket"`) {
		t.Errorf("embedded quote not stripped:\n%s", gotQuery)
	}
}

func TestGraphQLSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	s := NewGraphQLSearcher(server.URL)
	hits, err := s.Search(context.Background(), "jacket", "", "", 10)
	if err == nil {
		t.Fatal("server error should surface as an error")
	}
	if len(hits) != 0 {
		t.Fatalf("error case returned hits: %v", hits)
	}
}

func TestSearchableText(t *testing.T) {
	r := 4.0
	p := ProductHit{
		Name: "Trail Jacket", Category: "Jacket", Brand: "Northpoint",
		Material: "Gore-Tex", Tags: "outdoor,waterproof", RatingAvg: &r,
		Variants: []Variant{{SKU: "TJ-1", Color: "Blue", Size: "M"}},
	}

	text := p.SearchableText()
	for _, fragment := range []string{"trail jacket", "northpoint", "gore-tex", "waterproof", "blue", "tj-1"} {
		if !strings.Contains(text, fragment) {
			t.Errorf("SearchableText missing %q: %s", fragment, text)
		}
	}
}
