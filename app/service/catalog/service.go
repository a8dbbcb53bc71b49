package catalog

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"mesabot/app/config"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
	"github.com/samber/oops"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCity capitalizes each word of a city query, the form used in responses.
// A Caser is not safe for concurrent use, so one is created per call.
func TitleCity(query string) string {
	return cases.Title(language.Spanish).String(strings.TrimSpace(query))
}

// Catalog holds the menu and delivery-city reference data. It is loaded once
// at startup and read-only afterwards, so it is safe to share across sessions.
type Catalog struct {
	categories []string
	byCategory map[string][]MenuItem
	items      []MenuItem
	cities     []string
}

func New(di *do.Injector) (*Catalog, error) {
	cfg := do.MustInvoke[*config.Config](di)

	menuFile, err := os.Open(cfg.Data.MenuPath)
	if err != nil {
		return nil, oops.Errorf("failed to open menu source: %w", err)
	}
	defer menuFile.Close()

	cityFile, err := os.Open(cfg.Data.CitiesPath)
	if err != nil {
		return nil, oops.Errorf("failed to open cities source: %w", err)
	}
	defer cityFile.Close()

	return Load(menuFile, cityFile)
}

// Load reads both sources completely. Any malformed row fails the whole load;
// a partially loaded catalog is never returned.
func Load(menuSrc, citySrc io.Reader) (*Catalog, error) {
	c := &Catalog{
		byCategory: make(map[string][]MenuItem),
	}

	if err := c.loadMenu(menuSrc); err != nil {
		return nil, err
	}

	if err := c.loadCities(citySrc); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Catalog) loadMenu(src io.Reader) error {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return oops.Errorf("failed to read menu source: %w", err)
	}

	if len(rows) < 2 {
		return oops.Errorf("menu source has no data rows")
	}

	for i, row := range rows[1:] {
		if len(row) < 3 {
			return oops.Errorf("menu row %d has %d columns, expected at least 3", i+2, len(row))
		}

		item := MenuItem{
			Category:    strings.TrimSpace(row[0]),
			Name:        strings.TrimSpace(row[1]),
			ServingSize: strings.TrimSpace(row[2]),
		}

		if len(row) >= 4 && strings.TrimSpace(row[3]) != "" {
			price, err := decimal.NewFromString(strings.TrimSpace(row[3]))
			if err != nil {
				return oops.Errorf("menu row %d has malformed price %q: %w", i+2, row[3], err)
			}

			item.Price = price
			item.HasPrice = true
		}

		if _, ok := c.byCategory[item.Category]; !ok {
			c.categories = append(c.categories, item.Category)
		}

		c.byCategory[item.Category] = append(c.byCategory[item.Category], item)
		c.items = append(c.items, item)
	}

	return nil
}

func (c *Catalog) loadCities(src io.Reader) error {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return oops.Errorf("failed to read cities source: %w", err)
	}

	if len(rows) < 2 {
		return oops.Errorf("cities source has no data rows")
	}

	for i, row := range rows[1:] {
		if len(row) < 2 {
			return oops.Errorf("cities row %d has %d columns, expected at least 2", i+2, len(row))
		}

		c.cities = append(c.cities, strings.TrimSpace(row[0])+", "+strings.TrimSpace(row[1]))
	}

	return nil
}

// Categories returns category names in the order they were first encountered.
func (c *Catalog) Categories() []string {
	return c.categories
}

// ItemsInCategory matches the category exactly, case-sensitive.
func (c *Catalog) ItemsInCategory(category string) []MenuItem {
	return c.byCategory[category]
}

// FindItem matches item names case-insensitively. With duplicate names the
// first loaded occurrence wins.
func (c *Catalog) FindItem(name string) (MenuItem, bool) {
	name = strings.TrimSpace(name)

	for _, item := range c.items {
		if strings.EqualFold(item.Name, name) {
			return item, true
		}
	}

	return MenuItem{}, false
}

// Items returns every menu item in load order.
func (c *Catalog) Items() []MenuItem {
	return c.items
}

// CityServed reports whether the query matches any "City, Region" entry by
// case-insensitive containment. "York" therefore matches "New York, NY"; that
// permissive behavior is intentional and covered by tests.
func (c *Catalog) CityServed(query string) (string, bool) {
	query = strings.ToLower(TitleCity(query))

	index := pie.FindFirstUsing(c.cities, func(entry string) bool {
		return strings.Contains(strings.ToLower(entry), query)
	})
	if index < 0 {
		return "", false
	}

	return c.cities[index], true
}

// Cities returns all "City, Region" entries in load order.
func (c *Catalog) Cities() []string {
	return c.cities
}

// SampleCities returns the first n entries in load order, for example listings.
func (c *Catalog) SampleCities(n int) []string {
	return pie.Top(c.cities, n)
}
