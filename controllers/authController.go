package controllers

import (
	"net/mail"
	"strings"

	"bizplan-backend/database"
	"bizplan-backend/middlewares"
	"bizplan-backend/models"
	"bizplan-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func Register(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	email := strings.TrimSpace(strings.ToLower(data["email"]))
	if _, err := mail.ParseAddress(email); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid email address")
	}
	if len(data["password"]) < 8 {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 8 characters")
	}
	if data["password"] != data["password_confirm"] {
		return fiber.NewError(fiber.StatusBadRequest, "passwords do not match")
	}

	var mailExist models.User
	database.DB.Where("email = ?", email).First(&mailExist)
	if mailExist.Email != "" {
		return fiber.NewError(fiber.StatusBadRequest, "email already exists")
	}

	user := models.User{
		FirstName: strings.TrimSpace(data["first_name"]),
		LastName:  strings.TrimSpace(data["last_name"]),
		Email:     email,
		Activity:  strings.TrimSpace(data["activity"]),
	}
	user.SetPassword(data["password"])
	if err := database.DB.Create(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create user")
	}

	return c.JSON(user)
}

func Login(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	email := strings.TrimSpace(strings.ToLower(data["email"]))

	var user models.User
	database.DB.Where("email = ?", email).First(&user)
	if user.Id == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}
	if err := user.ComparePassword(data["password"]); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := middlewares.GenerateJWT(user.Id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not sign token")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout is a no-op for Bearer tokens; clients drop the token.
func Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "success"})
}

func GetProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var user models.User
	database.DB.Where("id = ?", userID).First(&user)
	if user.Id == "" {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	return c.JSON(user)
}

type updateProfileDTO struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Activity  *string `json:"activity" validate:"omitempty,max=200"`
}

// UpdateProfile patches the caller's profile; absent fields stay as-is.
// Email and password changes go through dedicated flows, not this endpoint.
func UpdateProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var dto updateProfileDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&dto)

	updates := utils.UpdatesFromPtrDTO(&dto, nil)
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "nothing to update")
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update profile")
	}

	var user models.User
	database.DB.Where("id = ?", userID).First(&user)
	return c.JSON(user)
}
