package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestToAmount(t *testing.T) {
	tests := []struct {
		stored int64
		want   float64
	}{
		{0, 0},
		{1000, 1},
		{12500, 12.5},
		{99, 0.099},
		{-2000, -2},
	}

	for _, tt := range tests {
		if got := ToAmount(tt.stored); got != tt.want {
			t.Errorf("ToAmount(%d) = %v, want %v", tt.stored, got, tt.want)
		}
	}
}

func TestOrderRecordToOrder(t *testing.T) {
	record := OrderRecord{
		ID:             "o-1",
		OrderNumber:    "SF-1001",
		CustomerName:   "Ana",
		CustomerPhone:  "0400000000",
		CustomerIP:     "203.0.113.9",
		Status:         OrderStatusCompleted,
		SubtotalAmount: 20000,
		ShippingAmount: 5000,
		TotalAmount:    25000,
		CreatedAt:      "2024-03-01T10:00:00+00:00",
		Items: []OrderItemRecord{
			{ProductID: "p-1", ProductName: "Sourdough", Quantity: 2, UnitPrice: 10000, LineTotal: 20000},
		},
	}

	order := record.ToOrder()

	if order.Subtotal != 20 || order.Shipping != 5 || order.Total != 25 {
		t.Errorf("unexpected amounts: %+v", order)
	}
	if len(order.Items) != 1 || order.Items[0].UnitPrice != 10 || order.Items[0].LineTotal != 20 {
		t.Errorf("unexpected items: %+v", order.Items)
	}
	if !record.IsCompleted() {
		t.Error("expected record to be completed")
	}

	data, err := json.Marshal(order)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "203.0.113.9") {
		t.Error("customer IP must not appear in the public order shape")
	}
	if !strings.Contains(string(data), `"orderNumber":"SF-1001"`) {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestToOrdersEmpty(t *testing.T) {
	orders := ToOrders(nil)
	if orders == nil || len(orders) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", orders)
	}

	data, _ := json.Marshal(OrdersResponse{Success: true, Orders: orders, Count: 0})
	if string(data) != `{"success":true,"orders":[],"count":0}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestIsValidImageFilename(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"foo-bar.png", true},
		{"cake1.jpg", true},
		{"hero.jpeg", true},
		{"logo.svg", true},
		{"FOO.png", false},
		{"foo.exe", false},
		{"foo.PNG", false},
		{"foo_bar.png", false},
		{"../secret.png", false},
		{"foo.png.exe", false},
		{".png", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidImageFilename(tt.name); got != tt.want {
				t.Errorf("IsValidImageFilename(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestImageContentType(t *testing.T) {
	tests := map[string]string{
		"a.png":  "image/png",
		"a.jpg":  "image/jpeg",
		"a.jpeg": "image/jpeg",
		"a.svg":  "image/svg+xml",
		"a.bin":  DefaultContentType,
	}
	for name, want := range tests {
		if got := ImageContentType(name); got != want {
			t.Errorf("ImageContentType(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestParseFlag(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "1", "yes", " Yes "} {
		if !ParseFlag(v) {
			t.Errorf("ParseFlag(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "false", "0", "no", "on"} {
		if ParseFlag(v) {
			t.Errorf("ParseFlag(%q) = true, want false", v)
		}
	}
}

func TestParseLimit(t *testing.T) {
	if got, err := ParseLimit(""); err != nil || got != DefaultOrderLimit {
		t.Errorf("ParseLimit(\"\") = %d, %v", got, err)
	}
	if got, err := ParseLimit("25"); err != nil || got != 25 {
		t.Errorf("ParseLimit(\"25\") = %d, %v", got, err)
	}
	for _, v := range []string{"0", "101", "-1", "ten"} {
		if _, err := ParseLimit(v); err == nil {
			t.Errorf("ParseLimit(%q) expected error", v)
		}
	}
}

func TestValidateRequired(t *testing.T) {
	if err := ValidateRequired("  ", "ip"); err == nil || err.Error() != "ip is required" {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateRequired("1.2.3.4", "ip"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
