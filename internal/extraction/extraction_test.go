package extraction

import (
	"testing"

	"github.com/Kamal-Nayan-Kumar/expense-tracker/internal/models"
)

func TestDecodeResult(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Result
		wantErr bool
	}{
		{
			name: "plain json",
			raw:  `{"Category":"Food","Description":"Pizza","Amount":"220.00"}`,
			want: Result{Category: "Food", Description: "Pizza", Amount: "220.00"},
		},
		{
			name: "fenced json",
			raw:  "```json\n{\"Category\":\"Travel\",\"Description\":\"Taxi\",\"Amount\":\"80.50\"}\n```",
			want: Result{Category: "Travel", Description: "Taxi", Amount: "80.50"},
		},
		{
			name: "surrounding prose",
			raw:  "Here is the result: {\"Category\":\"Other\",\"Description\":\"Misc\",\"Amount\":\"5\"} hope that helps",
			want: Result{Category: "Other", Description: "Misc", Amount: "5"},
		},
		{
			name:    "not json",
			raw:     "sorry, I could not read the receipt",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeResult(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeResult() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if *got != tt.want {
				t.Errorf("decodeResult() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestResultFailed(t *testing.T) {
	sentinel := Result{Category: models.CategoryError, Description: "Failed to process input.", Amount: "0.00"}
	if !sentinel.Failed() {
		t.Error("ERROR sentinel not reported as failed")
	}

	ok := Result{Category: models.CategoryFood, Description: "Pizza", Amount: "220.00"}
	if ok.Failed() {
		t.Error("valid result reported as failed")
	}
}
