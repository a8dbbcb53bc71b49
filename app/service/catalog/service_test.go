package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const menuCSV = `Category,Item,Serving Size,Price
Entradas,Nachos con queso,1 porción,5.50
Hamburguesas,Hamburguesa,1 unidad,8.50
Hamburguesas,Hamburguesa gourmet,1 unidad,11.00
Acompañamientos,Papas,1 porción,3.00
Bebidas,Refresco,500 ml,2.00
Bebidas,Refresco,1 litro,3.50
`

const citiesCSV = `City,State
New York,NY
Los Angeles,CA
Chicago,IL
Houston,TX
Phoenix,AZ
Philadelphia,PA
`

func load(t *testing.T, menu, cities string) *Catalog {
	t.Helper()

	c, err := Load(strings.NewReader(menu), strings.NewReader(cities))
	require.NoError(t, err)

	return c
}

func TestCategoriesKeepLoadOrder(t *testing.T) {
	c := load(t, menuCSV, citiesCSV)

	assert.Equal(t, []string{"Entradas", "Hamburguesas", "Acompañamientos", "Bebidas"}, c.Categories())
}

func TestItemsInCategoryIsCaseSensitive(t *testing.T) {
	c := load(t, menuCSV, citiesCSV)

	assert.Len(t, c.ItemsInCategory("Hamburguesas"), 2)
	assert.Empty(t, c.ItemsInCategory("hamburguesas"))
}

func TestFindItemCaseInsensitive(t *testing.T) {
	c := load(t, menuCSV, citiesCSV)

	item, ok := c.FindItem("HAMBURGUESA")
	require.True(t, ok)
	assert.Equal(t, "Hamburguesa", item.Name)
	assert.Equal(t, "1 unidad", item.ServingSize)
	assert.True(t, item.HasPrice)
	assert.Equal(t, "8.50", item.Price.StringFixed(2))

	_, ok = c.FindItem("sushi")
	assert.False(t, ok)
}

func TestFindItemDuplicateNameFirstWins(t *testing.T) {
	c := load(t, menuCSV, citiesCSV)

	item, ok := c.FindItem("refresco")
	require.True(t, ok)
	assert.Equal(t, "500 ml", item.ServingSize)
}

func TestItemWithoutPrice(t *testing.T) {
	menu := "Category,Item,Serving Size\nBebidas,Refresco,500 ml\n"
	c := load(t, menu, citiesCSV)

	item, ok := c.FindItem("refresco")
	require.True(t, ok)
	assert.False(t, item.HasPrice)
}

func TestCityServedByContainment(t *testing.T) {
	c := load(t, menuCSV, citiesCSV)

	entry, ok := c.CityServed("chicago")
	require.True(t, ok)
	assert.Equal(t, "Chicago, IL", entry)

	// Documented false positive of the containment rule.
	entry, ok = c.CityServed("York")
	require.True(t, ok)
	assert.Equal(t, "New York, NY", entry)

	_, ok = c.CityServed("Nueva York")
	assert.False(t, ok)

	_, ok = c.CityServed("Boston")
	assert.False(t, ok)
}

func TestSampleCities(t *testing.T) {
	c := load(t, menuCSV, citiesCSV)

	assert.Equal(t, []string{"New York, NY", "Los Angeles, CA", "Chicago, IL"}, c.SampleCities(3))
	assert.Len(t, c.SampleCities(100), 6)
}

func TestLoadIsAllOrNothing(t *testing.T) {
	tests := []struct {
		name   string
		menu   string
		cities string
	}{
		{"menu row too short", "Category,Item,Serving Size\nEntradas,Nachos\n", citiesCSV},
		{"menu malformed price", "Category,Item,Serving Size,Price\nEntradas,Nachos,1 porción,cinco\n", citiesCSV},
		{"menu empty", "Category,Item,Serving Size\n", citiesCSV},
		{"cities row too short", menuCSV, "City,State\nChicago\n"},
		{"cities empty", menuCSV, "City,State\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.menu), strings.NewReader(tt.cities))
			assert.Error(t, err)
		})
	}
}
