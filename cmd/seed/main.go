package main

import (
	"fmt"

	"github.com/mallhub-next/internal/config"
	"github.com/mallhub-next/internal/constants"
	"github.com/mallhub-next/internal/logger"
	"github.com/mallhub-next/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type tenantSeed struct {
	Username    string
	Email       string
	ShopName    string
	Description string
	Category    string
	Approved    bool
	Products    []productSeed
}

type productSeed struct {
	Name        string
	Description string
	ImageURL    string
	Price       float64
	Stock       int
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	seeds := []tenantSeed{
		{
			Username:    "fresh_market",
			Email:       "fresh_market@mall.local",
			ShopName:    "Fresh Market",
			Description: "每日直送的生鲜蔬果与日常食材",
			Category:    "Grocery",
			Approved:    true,
			Products: []productSeed{
				{Name: "有机番茄 1kg", Description: "当季采摘，冷链直送", ImageURL: "https://images.unsplash.com/photo-1546470427-1ec6b777bb5e?w=800", Price: 6.50, Stock: 120},
				{Name: "农场鸡蛋 12 枚", Description: "散养土鸡蛋", ImageURL: "https://images.unsplash.com/photo-1582722872445-44dc5f7e3c8f?w=800", Price: 4.80, Stock: 80},
				{Name: "鲜牛奶 1L", Description: "本地牧场当日鲜奶", ImageURL: "https://images.unsplash.com/photo-1550583724-b2692b85b150?w=800", Price: 3.20, Stock: 60},
			},
		},
		{
			Username:    "gadget_hub",
			Email:       "gadget_hub@mall.local",
			ShopName:    "Gadget Hub",
			Description: "数码配件与智能小家电",
			Category:    "Electronics",
			Approved:    true,
			Products: []productSeed{
				{Name: "无线蓝牙耳机", Description: "主动降噪，24 小时续航", ImageURL: "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800", Price: 99.99, Stock: 35},
				{Name: "便携充电宝 10000mAh", Description: "双口快充", ImageURL: "https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=800", Price: 49.99, Stock: 50},
			},
		},
		{
			Username:    "cozy_home",
			Email:       "cozy_home@mall.local",
			ShopName:    "Cozy Home",
			Description: "家居生活用品，尚待审核",
			Category:    "Lifestyle",
			Approved:    false,
			Products: []productSeed{
				{Name: "香薰蜡烛", Description: "天然大豆蜡", ImageURL: "https://images.unsplash.com/photo-1602607213353-ce95b9e29f44?w=800", Price: 15.00, Stock: 40},
			},
		},
	}

	for _, seed := range seeds {
		user := ensureUser(stdLog.Printf, seed.Username, seed.Email, constants.RoleTenant)
		if user == nil {
			continue
		}

		var tenant models.Tenant
		if err := models.DB.Where("user_id = ?", user.ID).First(&tenant).Error; err != nil {
			tenant = models.Tenant{
				UserID:      user.ID,
				ShopName:    seed.ShopName,
				Description: seed.Description,
				Category:    seed.Category,
				IsApproved:  seed.Approved,
			}
			if err := models.DB.Create(&tenant).Error; err != nil {
				stdLog.Printf("Failed to create tenant %s: %v", seed.ShopName, err)
				continue
			}
			stdLog.Printf("Created tenant: %s", seed.ShopName)
		} else {
			tenant.ShopName = seed.ShopName
			tenant.Description = seed.Description
			tenant.Category = seed.Category
			tenant.IsApproved = seed.Approved
			if err := models.DB.Save(&tenant).Error; err != nil {
				stdLog.Printf("Failed to update tenant %s: %v", seed.ShopName, err)
				continue
			}
			stdLog.Printf("Updated tenant: %s", seed.ShopName)
		}

		for _, prod := range seed.Products {
			var existing models.Product
			if err := models.DB.Where("tenant_id = ? AND name = ?", tenant.ID, prod.Name).First(&existing).Error; err != nil {
				item := models.Product{
					TenantID:    tenant.ID,
					Name:        prod.Name,
					Description: prod.Description,
					ImageURL:    prod.ImageURL,
					Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(prod.Price)),
					Stock:       prod.Stock,
					IsActive:    true,
				}
				if err := models.DB.Create(&item).Error; err != nil {
					stdLog.Printf("Failed to create product %s: %v", prod.Name, err)
				} else {
					stdLog.Printf("Created product: %s", prod.Name)
				}
				continue
			}
			existing.Description = prod.Description
			existing.ImageURL = prod.ImageURL
			existing.Price = models.NewMoneyFromDecimal(decimal.NewFromFloat(prod.Price))
			existing.Stock = prod.Stock
			existing.IsActive = true
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.Name)
			}
		}
	}

	// 演示买家账号
	if customer := ensureUser(stdLog.Printf, "demo_customer", "demo_customer@mall.local", constants.RoleCustomer); customer != nil {
		var profile models.CustomerProfile
		if err := models.DB.Where("user_id = ?", customer.ID).First(&profile).Error; err != nil {
			profile = models.CustomerProfile{UserID: customer.ID}
			if err := models.DB.Create(&profile).Error; err != nil {
				stdLog.Printf("Failed to create customer profile: %v", err)
			} else {
				stdLog.Printf("Created customer profile for demo_customer")
			}
		}
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 1 Admin (admin / admin123 unless overridden)")
	fmt.Println("- 3 Tenants (2 approved, 1 pending)")
	fmt.Println("- 6 Products")
	fmt.Println("- 1 Demo customer (demo_customer / Passw0rd!)")
}

func ensureUser(logf func(string, ...interface{}), username, email, role string) *models.User {
	var user models.User
	if err := models.DB.Where("username = ?", username).First(&user).Error; err == nil {
		return &user
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.DefaultCost)
	if err != nil {
		logf("Failed to hash password for %s: %v", username, err)
		return nil
	}
	user = models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       constants.UserStatusActive,
	}
	if err := models.DB.Create(&user).Error; err != nil {
		logf("Failed to create user %s: %v", username, err)
		return nil
	}
	logf("Created user: %s (%s)", username, role)
	return &user
}
