package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ternarybob/cognicart/internal/models"
)

// SeedProducts returns the built-in catalog. Prices are in INR.
func SeedProducts() []models.Product {
	return []models.Product{
		{
			ID: "prod_samsung_m34", Title: "Samsung Galaxy M34 5G (Midnight Blue, 8GB, 128GB)",
			Brand: "Samsung", Category: "electronics", ProductType: "smartphone",
			Price: 17999, Currency: "INR", Rating: 4.2, ReviewCount: 12847,
			Features:     []string{"6000mAh battery", "120Hz sAMOLED display", "50MP triple camera", "5G"},
			Availability: "in_stock", Source: "catalog",
		},
		{
			ID: "prod_redmi_note13", Title: "Redmi Note 13 Pro (Fusion Purple, 8GB, 256GB)",
			Brand: "Redmi", Category: "electronics", ProductType: "smartphone",
			Price: 26999, Currency: "INR", Rating: 4.3, ReviewCount: 8932,
			Features:     []string{"200MP camera", "AMOLED display", "67W turbo charging", "5G"},
			Availability: "in_stock", Source: "catalog",
		},
		{
			ID: "prod_oneplus_11r", Title: "OnePlus 11R 5G (Galactic Silver, 8GB, 128GB)",
			Brand: "OnePlus", Category: "electronics", ProductType: "smartphone",
			Price: 39999, Currency: "INR", Rating: 4.5, ReviewCount: 6754,
			Features:     []string{"Snapdragon 8+ Gen 1", "100W SUPERVOOC charging", "120Hz AMOLED", "5G"},
			Availability: "in_stock", Source: "catalog",
		},
		{
			ID: "prod_iphone_13", Title: "Apple iPhone 13 (Midnight, 128GB)",
			Brand: "Apple", Category: "electronics", ProductType: "smartphone",
			Price: 54900, Currency: "INR", Rating: 4.6, ReviewCount: 21543,
			Features:     []string{"A15 Bionic chip", "Super Retina XDR display", "Cinematic mode", "dual camera"},
			Availability: "in_stock", Source: "catalog",
		},
		{
			ID: "prod_hp_pavilion15", Title: "HP Pavilion 15 (12th Gen i5, 16GB, 512GB SSD)",
			Brand: "HP", Category: "electronics", ProductType: "laptop",
			Price: 54990, Currency: "INR", Rating: 4.1, ReviewCount: 3421,
			Features:     []string{"Intel Core i5-1240P", "16GB RAM", "512GB SSD", "backlit keyboard"},
			Availability: "in_stock", Source: "catalog",
		},
		{
			ID: "prod_lenovo_ideapad3", Title: "Lenovo IdeaPad 3 (Ryzen 5, 8GB, 512GB SSD)",
			Brand: "Lenovo", Category: "electronics", ProductType: "laptop",
			Price: 41990, Currency: "INR", Rating: 4.0, ReviewCount: 5632,
			Features:     []string{"AMD Ryzen 5 5500U", "8GB RAM", "512GB SSD", "15.6 inch FHD display"},
			Availability: "in_stock", Source: "catalog",
		},
		{
			ID: "prod_asus_vivobook15", Title: "ASUS VivoBook 15 (11th Gen i3, 8GB, 512GB SSD)",
			Brand: "ASUS", Category: "electronics", ProductType: "laptop",
			Price: 34990, Currency: "INR", Rating: 3.9, ReviewCount: 4218,
			Features:     []string{"Intel Core i3-1115G4", "8GB RAM", "512GB SSD", "fingerprint sensor"},
			Availability: "in_stock", Source: "catalog",
		},
		{
			ID: "prod_dell_inspiron3511", Title: "Dell Inspiron 3511 (11th Gen i5, 8GB, 1TB HDD + 256GB SSD)",
			Brand: "Dell", Category: "electronics", ProductType: "laptop",
			Price: 47990, Currency: "INR", Rating: 4.0, ReviewCount: 2876,
			Features:     []string{"Intel Core i5-1135G7", "8GB RAM", "dual storage", "15.6 inch FHD display"},
			Availability: "in_stock", Source: "catalog",
		},
		{
			ID: "prod_boat_airdopes", Title: "boAt Airdopes 141 Bluetooth TWS Earbuds",
			Brand: "boAt", Category: "electronics", ProductType: "earbuds",
			Price: 1299, Currency: "INR", Rating: 4.1, ReviewCount: 98234,
			Features:     []string{"42H playtime", "ENx noise cancellation", "low latency mode", "IPX4"},
			Availability: "in_stock", Source: "catalog",
		},
		{
			ID: "prod_sony_whch720n", Title: "Sony WH-CH720N Wireless Noise Cancelling Headphones",
			Brand: "Sony", Category: "electronics", ProductType: "headphones",
			Price: 8990, Currency: "INR", Rating: 4.4, ReviewCount: 7612,
			Features:     []string{"active noise cancellation", "35H battery", "multipoint connection", "lightweight"},
			Availability: "in_stock", Source: "catalog",
		},
		{
			ID: "prod_jbl_tune770nc", Title: "JBL Tune 770NC Wireless Over Ear ANC Headphones",
			Brand: "JBL", Category: "electronics", ProductType: "headphones",
			Price: 7999, Currency: "INR", Rating: 4.3, ReviewCount: 5489,
			Features:     []string{"adaptive noise cancelling", "70H playtime", "JBL Pure Bass", "fast charge"},
			Availability: "in_stock", Source: "catalog",
		},
		{
			ID: "prod_nothing_ear2", Title: "Nothing Ear (2) Wireless Earbuds",
			Brand: "Nothing", Category: "electronics", ProductType: "earbuds",
			Price: 8999, Currency: "INR", Rating: 4.4, ReviewCount: 3156,
			Features:     []string{"hi-res audio", "active noise cancellation", "dual connection", "transparent design"},
			Availability: "in_stock", Source: "catalog",
		},
		{
			ID: "prod_eureka_quickclean", Title: "Eureka Forbes Quick Clean DX Vacuum Cleaner",
			Brand: "Eureka Forbes", Category: "home", ProductType: "vacuum cleaner",
			Price: 6499, Currency: "INR", Rating: 4.0, ReviewCount: 11243,
			Features:     []string{"1200W suction", "bagless design", "washable filter", "compact"},
			Availability: "in_stock", Source: "catalog",
		},
		{
			ID: "prod_agaro_regal", Title: "AGARO Regal 1600W Vacuum Cleaner",
			Brand: "AGARO", Category: "home", ProductType: "vacuum cleaner",
			Price: 7999, Currency: "INR", Rating: 4.2, ReviewCount: 4521,
			Features:     []string{"1600W motor", "HEPA filter", "blower function", "6L dust bag"},
			Availability: "in_stock", Source: "catalog",
		},
		{
			ID: "prod_blackdecker_vm1450", Title: "Black+Decker VM1450 1380W Vacuum Cleaner",
			Brand: "Black+Decker", Category: "home", ProductType: "vacuum cleaner",
			Price: 8990, Currency: "INR", Rating: 4.1, ReviewCount: 2310,
			Features:     []string{"1380W motor", "cyclonic action", "HEPA filter", "cord winder"},
			Availability: "in_stock", Source: "catalog",
		},
		{
			ID: "prod_fireboltt_phoenix", Title: "Fire-Boltt Phoenix Pro Smart Watch",
			Brand: "Fire-Boltt", Category: "electronics", ProductType: "smartwatch",
			Price: 2799, Currency: "INR", Rating: 4.0, ReviewCount: 45321,
			Features:     []string{"bluetooth calling", "1.39 inch display", "120 sports modes", "SpO2 monitoring"},
			Availability: "in_stock", Source: "catalog",
		},
		{
			ID: "prod_noise_colorfit", Title: "Noise ColorFit Pro 4 Alpha Smart Watch",
			Brand: "Noise", Category: "electronics", ProductType: "smartwatch",
			Price: 4499, Currency: "INR", Rating: 4.1, ReviewCount: 28765,
			Features:     []string{"1.78 inch AMOLED", "bluetooth calling", "heart rate monitor", "7 day battery"},
			Availability: "in_stock", Source: "catalog",
		},
		{
			ID: "prod_samsung_watch4", Title: "Samsung Galaxy Watch4 (44mm, Bluetooth)",
			Brand: "Samsung", Category: "electronics", ProductType: "smartwatch",
			Price: 16999, Currency: "INR", Rating: 4.3, ReviewCount: 9876,
			Features:     []string{"Wear OS", "body composition analysis", "ECG monitoring", "GPS"},
			Availability: "in_stock", Source: "catalog",
		},
	}
}

// LoadCatalogProducts returns the built-in catalog merged with the
// configured overlay file, when one is set.
func LoadCatalogProducts(seedFile string) ([]models.Product, error) {
	products := SeedProducts()
	if seedFile == "" {
		return products, nil
	}
	extra, err := LoadSeedFile(seedFile)
	if err != nil {
		return nil, err
	}
	return MergeProducts(products, extra), nil
}

// LoadSeedFile reads additional products from a YAML file. The entries
// are merged over the built-in catalog by ID.
func LoadSeedFile(path string) ([]models.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var doc struct {
		Products []models.Product `yaml:"products"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return doc.Products, nil
}

// MergeProducts overlays extra products onto base, replacing by ID.
func MergeProducts(base, extra []models.Product) []models.Product {
	if len(extra) == 0 {
		return base
	}
	index := make(map[string]int, len(base))
	merged := append([]models.Product(nil), base...)
	for i, p := range merged {
		index[p.ID] = i
	}
	for _, p := range extra {
		if i, ok := index[p.ID]; ok {
			merged[i] = p
		} else {
			index[p.ID] = len(merged)
			merged = append(merged, p)
		}
	}
	return merged
}
