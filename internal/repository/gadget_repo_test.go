package repository

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/soniabinty/gizmorent-server/internal/domain"
)

func TestSearchFilterEmpty(t *testing.T) {
	q := &domain.GadgetQuery{}
	q.Normalize()

	filter := SearchFilter(q)
	if len(filter) != 0 {
		t.Errorf("empty query should produce an empty filter, got %v", filter)
	}
}

func TestSearchFilterCategoryAllDropped(t *testing.T) {
	q := &domain.GadgetQuery{Category: domain.CategoryAll}
	q.Normalize()

	filter := SearchFilter(q)
	if _, ok := filter["category"]; ok {
		t.Error("category All must not constrain the filter")
	}
}

func TestSearchFilterCategoryExact(t *testing.T) {
	q := &domain.GadgetQuery{Category: "Drones"}
	q.Normalize()

	filter := SearchFilter(q)
	if filter["category"] != "Drones" {
		t.Errorf("category filter = %v, want Drones", filter["category"])
	}
}

func TestSearchFilterTextRegex(t *testing.T) {
	q := &domain.GadgetQuery{Text: "camera"}
	q.Normalize()

	filter := SearchFilter(q)
	or, ok := filter["$or"].(bson.A)
	if !ok {
		t.Fatalf("expected $or clause, got %v", filter)
	}
	if len(or) != 2 {
		t.Fatalf("$or should span name and category, got %d branches", len(or))
	}

	regex := bson.M{"$regex": "camera", "$options": "i"}
	want := bson.A{bson.M{"name": regex}, bson.M{"category": regex}}
	if !reflect.DeepEqual(or, want) {
		t.Errorf("$or = %v, want %v", or, want)
	}
}

func TestSearchFilterPriceRange(t *testing.T) {
	min, max := 10.0, 50.0

	q := &domain.GadgetQuery{MinPrice: &min, MaxPrice: &max}
	q.Normalize()
	filter := SearchFilter(q)
	want := bson.M{"$gte": 10.0, "$lte": 50.0}
	if !reflect.DeepEqual(filter["price"], want) {
		t.Errorf("price = %v, want %v", filter["price"], want)
	}

	// Absent bound stays unbounded.
	q = &domain.GadgetQuery{MinPrice: &min}
	q.Normalize()
	filter = SearchFilter(q)
	want = bson.M{"$gte": 10.0}
	if !reflect.DeepEqual(filter["price"], want) {
		t.Errorf("price = %v, want %v", filter["price"], want)
	}
}

func TestSearchSort(t *testing.T) {
	q := &domain.GadgetQuery{Sort: domain.SortPriceAsc}
	sort := searchSort(q)
	if len(sort) != 1 || sort[0].Key != "price" || sort[0].Value != 1 {
		t.Errorf("SortPriceAsc = %v, want price ascending", sort)
	}

	q.Sort = domain.SortPriceDesc
	sort = searchSort(q)
	if len(sort) != 1 || sort[0].Value != -1 {
		t.Errorf("SortPriceDesc = %v, want price descending", sort)
	}

	q.Sort = domain.SortNone
	if sort := searchSort(q); sort != nil {
		t.Errorf("SortNone = %v, want nil", sort)
	}
}
