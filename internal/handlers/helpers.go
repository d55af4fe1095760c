package handlers

import (
	"sort"

	"designflow-backend/internal/models"
)

func sortByCreatedDesc(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
