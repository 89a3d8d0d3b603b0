package devserver

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	addressResponse "github.com/heram/storefront/address/pkg/response"
	adminResponse "github.com/heram/storefront/admin/pkg/response"
	cartResponse "github.com/heram/storefront/cart/pkg/response"
	catalogResponse "github.com/heram/storefront/catalog/pkg/response"
	scheduleResponse "github.com/heram/storefront/schedule/pkg/response"
)

// State is the in-memory backing store of the devserver. Everything resets
// on restart; carts, addresses and profiles are keyed by token subject.
type State struct {
	mu sync.Mutex

	secretKey string

	products []catalogResponse.Product
	tray     catalogResponse.TastingTray

	carts     map[string][]cartResponse.Item
	addresses map[string][]addressResponse.Address
	profiles  map[string]profile
	otps      map[string][]byte

	discounts  []adminResponse.Discount
	settings   map[string]adminResponse.Setting
	categories []adminResponse.Category
	media      []adminResponse.Media
}

type profile struct {
	FirstName string
	LastName  string
	Email     string
}

func NewState(secretKey string) *State {
	s := &State{
		secretKey: secretKey,
		carts:     map[string][]cartResponse.Item{},
		addresses: map[string][]addressResponse.Address{},
		profiles:  map[string]profile{},
		otps:      map[string][]byte{},
		settings: map[string]adminResponse.Setting{
			"shop": {
				Type:         "shop",
				TaxPercent:   decimal.NewFromInt(9),
				ShippingCost: decimal.NewFromInt(35000),
			},
		},
		categories: []adminResponse.Category{
			{ID: "cat-espresso", Title: "Espresso Based"},
			{ID: "cat-brew", Title: "Hand Brew"},
			{ID: "cat-beans", Title: "Beans"},
		},
		discounts: []adminResponse.Discount{
			{ID: "disc-welcome", Code: "WELCOME", Percent: 10, Active: true},
		},
	}
	s.seedCatalog()
	return s
}

func (s *State) seedCatalog() {
	s.products = []catalogResponse.Product{
		{
			ID:          "prod-espresso",
			Title:       "Espresso",
			Description: "Double shot, house blend",
			Price:       decimal.NewFromInt(55000),
			Stock:       100,
			Categories:  []string{"cat-espresso"},
		},
		{
			ID:          "prod-latte",
			Title:       "Latte",
			Description: "Espresso with steamed milk",
			Price:       decimal.NewFromInt(78000),
			Discount:    15,
			Stock:       100,
			Categories:  []string{"cat-espresso"},
		},
		{
			ID:          "prod-v60",
			Title:       "V60 Pour Over",
			Description: "Single origin hand brew",
			Price:       decimal.NewFromInt(85000),
			Stock:       40,
			Categories:  []string{"cat-brew"},
		},
		{
			ID:          "prod-beans-ethiopia",
			Title:       "Ethiopia Yirgacheffe 250g",
			Description: "Washed, light roast",
			Price:       decimal.NewFromInt(320000),
			Discount:    20,
			Stock:       25,
			Categories:  []string{"cat-beans"},
		},
		{
			ID:          "prod-beans-brazil",
			Title:       "Brazil Santos 250g",
			Description: "Natural, medium roast",
			Price:       decimal.NewFromInt(260000),
			Stock:       30,
			Categories:  []string{"cat-beans"},
		},
	}
	s.tray = catalogResponse.TastingTray{
		Stage1: []catalogResponse.Product{
			{ID: "tray-1a", Title: "Kenya AA", Price: decimal.NewFromInt(40000), Stock: 50},
			{ID: "tray-1b", Title: "Colombia Huila", Price: decimal.NewFromInt(35000), Stock: 50},
		},
		Stage2: []catalogResponse.Product{
			{ID: "tray-2a", Title: "Sumatra Gayo", Price: decimal.NewFromInt(45000), Stock: 50},
			{ID: "tray-2b", Title: "Guatemala Antigua", Price: decimal.NewFromInt(42000), Stock: 50},
		},
		Stage3: []catalogResponse.Product{
			{ID: "tray-3a", Title: "Ethiopia Sidamo", Price: decimal.NewFromInt(50000), Stock: 50},
			{ID: "tray-3b", Title: "Rwanda Bourbon", Price: decimal.NewFromInt(48000), Stock: 50},
		},
		Stage4: []catalogResponse.Product{
			{ID: "tray-4a", Title: "Panama Geisha", Price: decimal.NewFromInt(90000), Stock: 20},
			{ID: "tray-4b", Title: "Yemen Mocha", Price: decimal.NewFromInt(85000), Stock: 20},
		},
	}
}

func (s *State) findProduct(id string) (catalogResponse.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	for tier := 1; tier <= 4; tier++ {
		for _, p := range s.tray.Stage(tier) {
			if p.ID == id {
				return p, true
			}
		}
	}
	return catalogResponse.Product{}, false
}

// deliveryDays fabricates the slot inventory for the next few days. Slot
// boundaries are fixed; past slots are the client's problem to filter.
func (s *State) deliveryDays(now time.Time) []scheduleResponse.DaySchedule {
	hours := [][2]int{{10, 12}, {14, 16}, {18, 20}}
	days := make([]scheduleResponse.DaySchedule, 0, 5)
	for d := 0; d < 5; d++ {
		date := now.AddDate(0, 0, d)
		day := scheduleResponse.DaySchedule{Date: date.Format("2006-01-02")}
		for i, h := range hours {
			start := time.Date(
				date.Year(), date.Month(), date.Day(),
				h[0], 0, 0, 0, date.Location(),
			)
			end := time.Date(
				date.Year(), date.Month(), date.Day(),
				h[1], 0, 0, 0, date.Location(),
			)
			day.Slots = append(day.Slots, scheduleResponse.TimeSlot{
				ID:    day.Date + "-" + string(rune('a'+i)),
				Start: start,
				End:   end,
			})
		}
		days = append(days, day)
	}
	return days
}
