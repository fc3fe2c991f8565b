package handlers

import (
	"sort"

	"github.com/anjiri1684/driving_exam/database"
	"github.com/anjiri1684/driving_exam/models"
	"github.com/anjiri1684/driving_exam/utils"
	"github.com/gofiber/fiber/v2"
)

const nearbyResultCap = 50

func ListSchools(c *fiber.Ctx) error {
	page, limit, offset := utils.ParsePagination(c)
	search := c.Query("search")
	isPartner := c.Query("isPartner")

	query := database.DB.Model(&models.DrivingSchool{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR address ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}
	if isPartner != "" {
		query = query.Where("is_partner = ?", isPartner == "true")
	}

	var total int64
	query.Count(&total)

	var schools []models.DrivingSchool
	if err := query.
		Order("is_partner DESC, name ASC").
		Limit(limit).Offset(offset).
		Find(&schools).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load driving schools"})
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"schools":    schools,
		"pagination": utils.Pagination(page, limit, total),
	}})
}

func GetSchool(c *fiber.Ctx) error {
	var school models.DrivingSchool
	if err := database.DB.First(&school, "id = ?", c.Params("schoolId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Driving school not found"})
	}
	return c.JSON(fiber.Map{"success": true, "data": school})
}

type schoolWithDistance struct {
	models.DrivingSchool
	Distance float64 `json:"distance"`
}

// NearbySchools lists schools within radius km of the given point, nearest
// first, capped at 50 results.
func NearbySchools(c *fiber.Ctx) error {
	if c.Query("lat") == "" || c.Query("lng") == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "lat and lng query parameters are required"})
	}

	lat := c.QueryFloat("lat")
	lng := c.QueryFloat("lng")
	radius := c.QueryFloat("radius", 10)
	if radius <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "radius must be positive"})
	}

	var schools []models.DrivingSchool
	if err := database.DB.
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Find(&schools).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load driving schools"})
	}

	var nearby []schoolWithDistance
	for _, school := range schools {
		distance := utils.HaversineKm(lat, lng, *school.Latitude, *school.Longitude)
		if distance <= radius {
			nearby = append(nearby, schoolWithDistance{DrivingSchool: school, Distance: distance})
		}
	}

	sort.Slice(nearby, func(i, j int) bool { return nearby[i].Distance < nearby[j].Distance })
	if len(nearby) > nearbyResultCap {
		nearby = nearby[:nearbyResultCap]
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"schools": nearby,
		"searchCenter": fiber.Map{
			"latitude":  lat,
			"longitude": lng,
		},
		"searchRadius": radius,
	}})
}

func PartnerSchools(c *fiber.Ctx) error {
	var schools []models.DrivingSchool
	if err := database.DB.
		Where("is_partner = ?", true).
		Order("name ASC").
		Find(&schools).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to load partner schools"})
	}
	return c.JSON(fiber.Map{"success": true, "data": schools})
}
