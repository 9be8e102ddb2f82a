package models

import "time"

// AttributeMapping maps one side-table column to the API field it is
// extracted from. Mappings are a compile-time allow list; nothing is ever
// derived from the payload shape.
type AttributeMapping struct {
	Column      string
	SourceField string
}

// Category is an immutable descriptor of one EPREL product group: its code,
// the remote endpoint segment, and the optional side-table mapping.
type Category struct {
	Code           string
	Endpoint       string
	AttributeTable string // empty when the category has no side table
	Attributes     []AttributeMapping
}

// HasAttributes reports whether the category stores extra fields in a side
// table.
func (c Category) HasAttributes() bool {
	return c.AttributeTable != "" && len(c.Attributes) > 0
}

// categories is the static registry of all known product groups, in the
// order syncs iterate them.
var categories = []Category{
	{Code: "airconditioners", Endpoint: "airconditioners"},
	{
		Code:           "dishwashers",
		Endpoint:       "dishwashers",
		AttributeTable: "product_dishwashers",
		Attributes: []AttributeMapping{
			{Column: "place_settings", SourceField: "placeSettings"},
			{Column: "energy_consumption_kwh_100cycles", SourceField: "energyConsumption100Cycles"},
			{Column: "water_consumption_liters_cycle", SourceField: "waterConsumptionCycle"},
			{Column: "drying_efficiency_class", SourceField: "dryingEfficiencyClass"},
			{Column: "noise_class", SourceField: "noiseClass"},
			{Column: "noise_level_db", SourceField: "noiseLevel"},
			{Column: "eco_program_duration_minutes", SourceField: "ecoProgramDuration"},
		},
	},
	{
		Code:           "washingmachines",
		Endpoint:       "washingmachines",
		AttributeTable: "product_washingmachines",
		Attributes: []AttributeMapping{
			{Column: "rated_capacity_kg", SourceField: "ratedCapacity"},
			{Column: "energy_consumption_kwh_100cycles", SourceField: "energyConsumption100Cycles"},
			{Column: "water_consumption_liters_cycle", SourceField: "waterConsumptionCycle"},
			{Column: "spin_drying_efficiency_class", SourceField: "spinDryingEfficiencyClass"},
			{Column: "noise_class", SourceField: "noiseClass"},
			{Column: "noise_level_db", SourceField: "noiseLevel"},
			{Column: "max_spin_speed_rpm", SourceField: "maxSpinSpeed"},
		},
	},
	{Code: "washerdryers", Endpoint: "washerdryers"},
	{Code: "tumbledryers", Endpoint: "tumbledryers"},
	{
		Code:           "refrigeratingappliances",
		Endpoint:       "refrigeratingappliances",
		AttributeTable: "product_refrigerators",
		Attributes: []AttributeMapping{
			{Column: "appliance_type", SourceField: "applianceType"},
			{Column: "total_volume_liters", SourceField: "totalVolume"},
			{Column: "refrigerator_volume_liters", SourceField: "refrigeratorVolume"},
			{Column: "freezer_volume_liters", SourceField: "freezerVolume"},
			{Column: "annual_energy_consumption_kwh", SourceField: "annualEnergyConsumption"},
			{Column: "noise_class", SourceField: "noiseClass"},
			{Column: "noise_level_db", SourceField: "noiseLevel"},
			{Column: "climate_class", SourceField: "climateClass"},
			{Column: "frost_free", SourceField: "frostFree"},
		},
	},
	{
		Code:           "electronicdisplays",
		Endpoint:       "electronicdisplays",
		AttributeTable: "product_displays",
		Attributes: []AttributeMapping{
			{Column: "display_type", SourceField: "displayType"},
			{Column: "screen_diagonal_cm", SourceField: "screenDiagonalCm"},
			{Column: "screen_diagonal_inches", SourceField: "screenDiagonalInches"},
			{Column: "resolution_horizontal", SourceField: "horizontalResolution"},
			{Column: "resolution_vertical", SourceField: "verticalResolution"},
			{Column: "panel_technology", SourceField: "panelTechnology"},
			{Column: "on_mode_power_consumption_w", SourceField: "onModePowerConsumption"},
			{Column: "standby_power_consumption_w", SourceField: "standbyPowerConsumption"},
			{Column: "annual_energy_consumption_kwh", SourceField: "annualEnergyConsumption"},
		},
	},
	{Code: "lightsources", Endpoint: "lightsources"},
	{Code: "ovens", Endpoint: "ovens"},
	{Code: "rangehoods", Endpoint: "rangehoods"},
	{
		Code:           "tyres",
		Endpoint:       "tyres",
		AttributeTable: "product_tyres",
		Attributes: []AttributeMapping{
			{Column: "tyre_size_designation", SourceField: "tyreSizeDesignation"},
			{Column: "fuel_efficiency_class", SourceField: "fuelEfficiencyClass"},
			{Column: "wet_grip_class", SourceField: "wetGripClass"},
			{Column: "external_rolling_noise_class", SourceField: "externalRollingNoiseClass"},
			{Column: "external_rolling_noise_db", SourceField: "externalRollingNoiseLevel"},
			{Column: "tyre_type", SourceField: "tyreType"},
			{Column: "snow_tyre", SourceField: "snowTyre"},
			{Column: "ice_tyre", SourceField: "iceTyre"},
		},
	},
	{Code: "waterheaters", Endpoint: "waterheaters"},
	{Code: "spaceheaters", Endpoint: "spaceheaters"},
	{Code: "ventilationunits", Endpoint: "ventilationunits"},
	{Code: "professionalrefrigeratedstoragecabinets", Endpoint: "professionalrefrigeratedstoragecabinets"},
	{Code: "solidfuelboilers", Endpoint: "solidfuelboilers"},
	{Code: "localheaterssolid", Endpoint: "localheaterssolid"},
	{Code: "localheatersgaseous", Endpoint: "localheatersgaseous"},
}

var categoryIndex = func() map[string]Category {
	idx := make(map[string]Category, len(categories))
	for _, c := range categories {
		idx[c.Code] = c
	}
	return idx
}()

// CategoryByCode looks up a category descriptor by its code.
func CategoryByCode(code string) (Category, bool) {
	c, ok := categoryIndex[code]
	return c, ok
}

// Categories returns all known categories in sync order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryCodes returns the codes of all known categories in sync order.
func CategoryCodes() []string {
	codes := make([]string, len(categories))
	for i, c := range categories {
		codes[i] = c.Code
	}
	return codes
}

// ProductDishwasher holds dishwasher-specific attributes.
type ProductDishwasher struct {
	ProductID                   uint      `gorm:"column:product_id;primaryKey"`
	PlaceSettings               *int      `gorm:"column:place_settings"`
	EnergyConsumptionKWh100     *float64  `gorm:"column:energy_consumption_kwh_100cycles"`
	WaterConsumptionLitersCycle *float64  `gorm:"column:water_consumption_liters_cycle"`
	DryingEfficiencyClass       *string   `gorm:"column:drying_efficiency_class;size:16"`
	NoiseClass                  *string   `gorm:"column:noise_class;size:16"`
	NoiseLevelDB                *float64  `gorm:"column:noise_level_db"`
	EcoProgramDurationMinutes   *int      `gorm:"column:eco_program_duration_minutes"`
	UpdatedAt                   time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (ProductDishwasher) TableName() string {
	return "product_dishwashers"
}

// ProductWashingMachine holds washing-machine-specific attributes.
type ProductWashingMachine struct {
	ProductID                   uint      `gorm:"column:product_id;primaryKey"`
	RatedCapacityKg             *float64  `gorm:"column:rated_capacity_kg"`
	EnergyConsumptionKWh100     *float64  `gorm:"column:energy_consumption_kwh_100cycles"`
	WaterConsumptionLitersCycle *float64  `gorm:"column:water_consumption_liters_cycle"`
	SpinDryingEfficiencyClass   *string   `gorm:"column:spin_drying_efficiency_class;size:16"`
	NoiseClass                  *string   `gorm:"column:noise_class;size:16"`
	NoiseLevelDB                *float64  `gorm:"column:noise_level_db"`
	MaxSpinSpeedRPM             *int      `gorm:"column:max_spin_speed_rpm"`
	UpdatedAt                   time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (ProductWashingMachine) TableName() string {
	return "product_washingmachines"
}

// ProductRefrigerator holds refrigerating-appliance-specific attributes.
type ProductRefrigerator struct {
	ProductID                  uint      `gorm:"column:product_id;primaryKey"`
	ApplianceType              *string   `gorm:"column:appliance_type;size:64"`
	TotalVolumeLiters          *float64  `gorm:"column:total_volume_liters"`
	RefrigeratorVolumeLiters   *float64  `gorm:"column:refrigerator_volume_liters"`
	FreezerVolumeLiters        *float64  `gorm:"column:freezer_volume_liters"`
	AnnualEnergyConsumptionKWh *float64  `gorm:"column:annual_energy_consumption_kwh"`
	NoiseClass                 *string   `gorm:"column:noise_class;size:16"`
	NoiseLevelDB               *float64  `gorm:"column:noise_level_db"`
	ClimateClass               *string   `gorm:"column:climate_class;size:16"`
	FrostFree                  *bool     `gorm:"column:frost_free"`
	UpdatedAt                  time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (ProductRefrigerator) TableName() string {
	return "product_refrigerators"
}

// ProductDisplay holds electronic-display-specific attributes.
type ProductDisplay struct {
	ProductID                  uint      `gorm:"column:product_id;primaryKey"`
	DisplayType                *string   `gorm:"column:display_type;size:64"`
	ScreenDiagonalCm           *float64  `gorm:"column:screen_diagonal_cm"`
	ScreenDiagonalInches       *float64  `gorm:"column:screen_diagonal_inches"`
	ResolutionHorizontal       *int      `gorm:"column:resolution_horizontal"`
	ResolutionVertical         *int      `gorm:"column:resolution_vertical"`
	PanelTechnology            *string   `gorm:"column:panel_technology;size:64"`
	OnModePowerConsumptionW    *float64  `gorm:"column:on_mode_power_consumption_w"`
	StandbyPowerConsumptionW   *float64  `gorm:"column:standby_power_consumption_w"`
	AnnualEnergyConsumptionKWh *float64  `gorm:"column:annual_energy_consumption_kwh"`
	UpdatedAt                  time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (ProductDisplay) TableName() string {
	return "product_displays"
}

// ProductTyre holds tyre-specific attributes.
type ProductTyre struct {
	ProductID                 uint      `gorm:"column:product_id;primaryKey"`
	TyreSizeDesignation       *string   `gorm:"column:tyre_size_designation;size:64"`
	FuelEfficiencyClass       *string   `gorm:"column:fuel_efficiency_class;size:16"`
	WetGripClass              *string   `gorm:"column:wet_grip_class;size:16"`
	ExternalRollingNoiseClass *string   `gorm:"column:external_rolling_noise_class;size:16"`
	ExternalRollingNoiseDB    *float64  `gorm:"column:external_rolling_noise_db"`
	TyreType                  *string   `gorm:"column:tyre_type;size:64"`
	SnowTyre                  *bool     `gorm:"column:snow_tyre"`
	IceTyre                   *bool     `gorm:"column:ice_tyre"`
	UpdatedAt                 time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (ProductTyre) TableName() string {
	return "product_tyres"
}

// AttributeModels lists the side-table models for schema migration.
func AttributeModels() []any {
	return []any{
		&ProductDishwasher{},
		&ProductWashingMachine{},
		&ProductRefrigerator{},
		&ProductDisplay{},
		&ProductTyre{},
	}
}
