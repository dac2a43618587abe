package seed

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lucakurth/techfinder-backend/pkg/db"
	"github.com/lucakurth/techfinder-backend/pkg/db/models"
	"github.com/lucakurth/techfinder-backend/pkg/logger"
)

type sampleProduct struct {
	name         string
	description  string
	price        string
	imageURL     string
	externalLink string
	category     string
}

var sampleProducts = []sampleProduct{
	{
		name:         "Apple iPad Air M3",
		description:  "Powerful M3 chip with stunning Liquid Retina display. Perfect for creative work, multitasking, and entertainment on the go.",
		price:        "599.00",
		imageURL:     "icons/ipad.png",
		externalLink: "https://www.apple.com/ipad-air/",
		category:     "Tablets",
	},
	{
		name:         "Lenovo ThinkPad",
		description:  "Reliable business laptop with legendary keyboard and all-day battery. Built for professionals who demand performance.",
		price:        "1299.00",
		imageURL:     "icons/lenovo.png",
		externalLink: "https://www.lenovo.com/thinkpad",
		category:     "Laptops",
	},
	{
		name:         "Apple Watch Series 10",
		description:  "Advanced health sensors with always-on display. Your ultimate fitness companion with seamless iPhone integration.",
		price:        "399.00",
		imageURL:     "icons/applewatch.png",
		externalLink: "https://www.apple.com/apple-watch-series-10/",
		category:     "Wearables",
	},
	{
		name:         "iPhone 17 Pro",
		description:  "Most powerful iPhone with A18 Pro chip and 48MP camera. Titanium design meets cutting-edge mobile technology.",
		price:        "999.00",
		imageURL:     "icons/iphone.png",
		externalLink: "https://www.apple.com/iphone-16-pro/",
		category:     "Smartphones",
	},
	{
		name:         "Samsung Galaxy Z Flip 6",
		description:  "Iconic foldable design with FlexMode and powerful cameras. Stand out with this compact and innovative device.",
		price:        "1099.00",
		imageURL:     "icons/samsungFlip.png",
		externalLink: "https://www.samsung.com/galaxy-z-flip6/",
		category:     "Smartphones",
	},
	{
		name:         "Alienware Laptop",
		description:  "High-refresh display with NVIDIA graphics and advanced cooling. Dominate every game with serious power.",
		price:        "1799.00",
		imageURL:     "icons/gamingLaptop.png",
		externalLink: "https://rog.asus.com/laptops/",
		category:     "Laptops",
	},
	{
		name:         "Sony WH-1000XM5",
		description:  "Industry-leading noise cancellation with exceptional sound. 30-hour battery and ultra-comfortable all-day design.",
		price:        "349.00",
		imageURL:     "icons/headphones.png",
		externalLink: "https://www.sony.com/headphones/",
		category:     "Audio",
	},
	{
		name:         "NVIDIA RTX 4080",
		description:  "Next-gen gaming with ray tracing and DLSS 3 technology. Unlock ultimate graphics power for your PC build.",
		price:        "1199.00",
		imageURL:     "icons/graphic.png",
		externalLink: "https://www.nvidia.com/geforce/",
		category:     "PC Components",
	},
}

// Run inserts the sample catalog once. A non-empty products table makes it a
// no-op so repeated runs stay safe.
func Run(ctx context.Context, client *db.Client, logg *logger.Logger) (int, error) {
	var count int64
	if err := client.DB().WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		if logg != nil {
			logg.Info(ctx, "products already exist, skipping sample data")
		}
		return 0, nil
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		for _, sample := range sampleProducts {
			imageURL := sample.imageURL
			externalLink := sample.externalLink
			category := sample.category
			product := models.Product{
				Name:         sample.name,
				Description:  sample.description,
				Price:        decimal.RequireFromString(sample.price),
				ImageURL:     &imageURL,
				ExternalLink: &externalLink,
				Category:     &category,
			}
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "count", len(sampleProducts)), "sample products inserted")
	}
	return len(sampleProducts), nil
}
