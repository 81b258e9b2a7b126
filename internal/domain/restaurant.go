package domain

import (
	"fmt"
	"time"
)

// Menu sections of a restaurant. Item IDs are only unique within a section.
const (
	SectionVeg        = "veg"
	SectionNonVeg     = "non-veg"
	SectionDrinks     = "drinks"
	SectionSpeciality = "speciality"
)

type Restaurant struct {
	ID                string     `bson:"_id" json:"id"`
	Name              string     `bson:"name" json:"name"`
	Cuisines          []string   `bson:"cuisines" json:"cuisines"`
	CostForTwoMessage string     `bson:"cost_for_two_message" json:"costForTwoMessage"`
	ImageURL          string     `bson:"image_url" json:"imageUrl"`
	Promotion         bool       `bson:"promotion" json:"promotion"`
	DeliveryTime      string     `bson:"delivery_time" json:"deliveryTime"`
	Rating            float64    `bson:"rating" json:"rating"`
	VegMenu           []MenuItem `bson:"veg_menu" json:"vegMenu"`
	NonVegMenu        []MenuItem `bson:"non_veg_menu" json:"nonVegMenu"`
	Drinks            []MenuItem `bson:"drinks" json:"drinks"`
	Speciality        []MenuItem `bson:"speciality" json:"speciality"`
	CreatedAt         time.Time  `bson:"created_at" json:"createdAt"`
}

type MenuItem struct {
	ID              int     `bson:"id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	Description     string  `bson:"description" json:"description"`
	Price           float64 `bson:"price" json:"price"`
	Category        string  `bson:"category" json:"category"`
	ServedToPeoples string  `bson:"served_to_peoples" json:"servedToPeoples"`
	ImageURL        string  `bson:"image_url" json:"imageUrl"`
}

// CartKey identifies a menu item across all sections and restaurants.
func (m MenuItem) CartKey(restaurantID, section string) string {
	return fmt.Sprintf("%s:%s:%d", restaurantID, section, m.ID)
}

type MenuSection struct {
	Name  string
	Items []MenuItem
}

// Menus returns the non-empty menu sections in display order.
func (r *Restaurant) Menus() []MenuSection {
	all := []MenuSection{
		{SectionVeg, r.VegMenu},
		{SectionNonVeg, r.NonVegMenu},
		{SectionDrinks, r.Drinks},
		{SectionSpeciality, r.Speciality},
	}
	menus := make([]MenuSection, 0, len(all))
	for _, s := range all {
		if len(s.Items) > 0 {
			menus = append(menus, s)
		}
	}
	return menus
}

// Normalize fills nil slices so documents and JSON always carry arrays.
func (r *Restaurant) Normalize() {
	if r.Cuisines == nil {
		r.Cuisines = []string{}
	}
	if r.VegMenu == nil {
		r.VegMenu = []MenuItem{}
	}
	if r.NonVegMenu == nil {
		r.NonVegMenu = []MenuItem{}
	}
	if r.Drinks == nil {
		r.Drinks = []MenuItem{}
	}
	if r.Speciality == nil {
		r.Speciality = []MenuItem{}
	}
}
