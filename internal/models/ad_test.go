package models

import (
	"errors"
	"testing"
)

func TestAdInputValidate(t *testing.T) {
	valid := AdInput{Title: "Велосипед", Description: "Горный", Category: "Спорт", Condition: ConditionUsed}
	if err := valid.Validate(); err != nil {
		t.Fatalf("валидное объявление не прошло проверку: %v", err)
	}

	// Пустое название недопустимо
	empty := valid
	empty.Title = "   "
	err := empty.Validate()
	if err == nil {
		t.Fatal("пустое название прошло проверку")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "title" {
		t.Fatalf("ожидали ValidationError по полю title, получили %v", err)
	}

	// Состояние вне списка new/used недопустимо
	badCondition := valid
	badCondition.Condition = "excellent"
	err = badCondition.Validate()
	if !errors.As(err, &ve) || ve.Field != "condition" {
		t.Fatalf("ожидали ValidationError по полю condition, получили %v", err)
	}

	noCondition := valid
	noCondition.Condition = ""
	if noCondition.Validate() == nil {
		t.Fatal("объявление без состояния прошло проверку")
	}
}

func TestSortClause(t *testing.T) {
	cases := map[string]string{
		SortCreatedAsc:  "created_at ASC",
		SortCreatedDesc: "created_at DESC",
		SortTitleAsc:    "title ASC",
		SortTitleDesc:   "title DESC",
		// Неизвестный ключ и пустая строка — сортировка по умолчанию
		"price_desc": "created_at DESC",
		"":           "created_at DESC",
	}

	for key, want := range cases {
		if got := SortClause(key); got != want {
			t.Errorf("SortClause(%q) = %q, ожидали %q", key, got, want)
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int
		want  int
	}{
		{0, 1},
		{1, 1},
		{10, 1},
		{11, 2},
		{15, 2},
		{20, 2},
		{21, 3},
	}

	for _, tc := range cases {
		if got := TotalPages(tc.total); got != tc.want {
			t.Errorf("TotalPages(%d) = %d, ожидали %d", tc.total, got, tc.want)
		}
	}
}

func TestClampPage(t *testing.T) {
	cases := []struct {
		page  int
		total int
		want  int
	}{
		{1, 15, 1},
		{2, 15, 2},
		// Выход за последнюю страницу возвращает последнюю, а не ошибку
		{5, 15, 2},
		{100, 15, 2},
		// Номера меньше единицы приводятся к первой странице
		{0, 15, 1},
		{-3, 15, 1},
		// Пустой список — всегда первая страница
		{7, 0, 1},
	}

	for _, tc := range cases {
		if got := ClampPage(tc.page, tc.total); got != tc.want {
			t.Errorf("ClampPage(%d, %d) = %d, ожидали %d", tc.page, tc.total, got, tc.want)
		}
	}
}
