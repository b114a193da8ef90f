package controllers

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/clubhive/club-booking-app/models"
	"github.com/clubhive/club-booking-app/redis"
	"github.com/clubhive/club-booking-app/utils"
)

type ProfileController struct {
	DB *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

// sanitize strips the password hash before a user leaves the API
func sanitize(user models.User) models.User {
	user.Password = nil
	return user
}

// Register creates an account. The password is optional (external-identity
// accounts carry none) and is bcrypt-hashed when present.
func (ctl *ProfileController) Register(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}

	if user.Email == "" || user.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "Missing required fields",
		})
	}

	var existing models.User
	if ctl.DB.Where("email = ?", user.Email).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "User with this email already exists",
		})
	}

	if user.Password != nil && *user.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*user.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
				Success: false,
				Message: "Failed to hash password",
			})
		}
		hashedStr := string(hashed)
		user.Password = &hashedStr
	}

	if err := ctl.DB.Create(&user).Error; err != nil {
		log.Printf("Error creating user: %v", err)
		status := fiber.StatusInternalServerError
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(utils.Response{
			Success: false,
			Message: "Failed to create user",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(utils.Response{
		Success: true,
		Message: "User registered successfully",
		Data:    sanitize(user),
	})
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login looks up the account by email and issues access and refresh
// tokens. Accounts with a stored password must present it.
func (ctl *ProfileController) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}

	var user models.User
	if ctl.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Message: "User not found. Please register before logging in.",
		})
	}

	if user.Password != nil && *user.Password != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(utils.Response{
				Success: false,
				Message: "Invalid credentials",
			})
		}
	}

	secret := jwtSecretFromEnv()

	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Failed to generate token",
		})
	}

	refreshClaims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(7 * 24 * time.Hour).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(secret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Failed to generate refresh token",
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Message: "Login successful",
		Data: fiber.Map{
			"token":        token,
			"refreshToken": refreshToken,
			"user":         sanitize(user),
		},
	})
}

// Logout revokes the presented token until it would have expired anyway
func (ctl *ProfileController) Logout(c *fiber.Ctx) error {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.Response{
			Success: false,
			Message: "No authentication token",
		})
	}

	ttl := 24 * time.Hour
	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if exp, ok := claims["exp"].(float64); ok {
			if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
				ttl = remaining
			}
		}
	}

	if err := redis.BlacklistToken(token.Raw, ttl); err != nil {
		log.Printf("Failed to blacklist token: %v", err)
	}

	return c.JSON(utils.Response{
		Success: true,
		Message: "Successfully logged out",
	})
}

type updateUserInput struct {
	Name     *string        `json:"name"`
	Address  *string        `json:"address"`
	Phone    *string        `json:"phone"`
	PhotoURL *string        `json:"photo_url"`
	Gender   *models.Gender `json:"gender"`
}

// UpdateUser updates only the profile fields the caller supplied
func (ctl *ProfileController) UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.User
	if err := ctl.DB.First(&user, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Message: "User not found",
		})
	}

	var input updateUserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}

	update := make(map[string]interface{})
	if input.Name != nil {
		update["name"] = *input.Name
	}
	if input.Address != nil {
		update["address"] = *input.Address
	}
	if input.Phone != nil {
		update["phone"] = *input.Phone
	}
	if input.PhotoURL != nil {
		update["photo_url"] = *input.PhotoURL
	}
	if input.Gender != nil {
		update["gender"] = *input.Gender
	}

	if len(update) > 0 {
		if err := ctl.DB.Model(&user).Updates(update).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
				Success: false,
				Message: "Failed to update user",
				Error:   err.Error(),
			})
		}
	}

	return c.JSON(utils.Response{
		Success: true,
		Message: "User updated successfully",
		Data:    sanitize(user),
	})
}

// VerifyUser marks the account verified
func (ctl *ProfileController) VerifyUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.User
	if err := ctl.DB.First(&user, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Message: "User not found",
		})
	}

	if err := ctl.DB.Model(&user).Update("is_verified", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Failed to verify user",
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Message: "User verified successfully",
		Data:    sanitize(user),
	})
}

// GetUserProfile fetches one user by ID
func (ctl *ProfileController) GetUserProfile(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.User
	if err := ctl.DB.First(&user, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Message: "User not found",
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Data:    sanitize(user),
	})
}

// UploadProfilePhoto stores the uploaded image with the hosting
// collaborator and saves the returned URL on the user.
func (ctl *ProfileController) UploadProfilePhoto(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.User
	if err := ctl.DB.First(&user, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Message: "User not found",
		})
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "No photo uploaded",
			Error:   err.Error(),
		})
	}

	url, err := utils.UploadProfilePhoto(file, fmt.Sprintf("user-%d", user.ID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Failed to upload photo",
			Error:   err.Error(),
		})
	}

	if err := ctl.DB.Model(&user).Update("photo_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Failed to save photo URL",
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Message: "Photo uploaded successfully",
		Data:    fiber.Map{"photo_url": url},
	})
}

// GetAllUsers lists users, paginated, newest first
func (ctl *ProfileController) GetAllUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var total int64
	if err := ctl.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Failed to count users",
			Error:   err.Error(),
		})
	}

	var users []models.User
	err := ctl.DB.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Failed to fetch users",
			Error:   err.Error(),
		})
	}

	for i := range users {
		users[i] = sanitize(users[i])
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return c.JSON(utils.Response{
		Success: true,
		Count:   utils.CountOf(int64(len(users))),
		Data: fiber.Map{
			"totalUsers":  total,
			"totalPages":  totalPages,
			"currentPage": page,
			"users":       users,
		},
	})
}

// DeleteUser removes one user by ID
func (ctl *ProfileController) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.User
	if err := ctl.DB.First(&user, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Message: "User not found",
		})
	}

	if err := ctl.DB.Delete(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Failed to delete user",
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Message: "User deleted successfully",
	})
}

// DeleteAllUsers wipes the user table. Admin only.
func (ctl *ProfileController) DeleteAllUsers(c *fiber.Ctx) error {
	result := ctl.DB.Where("1 = 1").Delete(&models.User{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Failed to delete users",
			Error:   result.Error.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Message: "All users have been deleted successfully",
		Count:   utils.CountOf(result.RowsAffected),
	})
}

type changeRoleInput struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ChangeUserRole updates the role of the user identified by email.
// The route is gated by Protected() + RequireRole(ADMIN): the admin check
// runs against the verified token principal, not a caller-supplied id.
func (ctl *ProfileController) ChangeUserRole(c *fiber.Ctx) error {
	var input changeRoleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}

	if !models.ValidRole(input.Role) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "Invalid role",
		})
	}

	var user models.User
	if err := ctl.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Message: "User not found",
		})
	}

	if err := ctl.DB.Model(&user).Update("role", input.Role).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Failed to change role",
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Message: fmt.Sprintf("User role changed to %s successfully", input.Role),
		Data:    sanitize(user),
	})
}

type monthlyRegistration struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
	Count int64  `json:"count"`
}

// GetUserAnalytics aggregates user statistics for the admin dashboard
func (ctl *ProfileController) GetUserAnalytics(c *fiber.Ctx) error {
	count := func(query interface{}, args ...interface{}) int64 {
		var n int64
		q := ctl.DB.Model(&models.User{})
		if query != nil {
			q = q.Where(query, args...)
		}
		q.Count(&n)
		return n
	}

	totalUsers := count(nil)
	verifiedUsers := count("is_verified = ?", true)
	adminUsers := count("role = ?", models.RoleAdmin)
	regularUsers := count("role = ?", models.RoleUser)
	instructorUsers := count("role = ?", models.RoleInstructor)
	otherUsers := count("role = ?", models.RoleOther)
	maleUsers := count("gender = ?", models.GenderMale)
	femaleUsers := count("gender = ?", models.GenderFemale)
	otherGenderUsers := count("gender = ?", models.GenderOther)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	newUsers := count("created_at >= ?", thirtyDaysAgo)

	sixMonthsAgo := time.Now().AddDate(0, -6, 0)
	type monthRow struct {
		Month time.Time
		Count int64
	}
	var rows []monthRow
	err := ctl.DB.Model(&models.User{}).
		Select("DATE_TRUNC('month', created_at) AS month, COUNT(*) AS count").
		Where("created_at >= ?", sixMonthsAgo).
		Group("DATE_TRUNC('month', created_at)").
		Order("month").
		Scan(&rows).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Failed to aggregate registrations",
			Error:   err.Error(),
		})
	}

	registrationByMonth := make([]monthlyRegistration, 0, len(rows))
	for _, row := range rows {
		registrationByMonth = append(registrationByMonth, monthlyRegistration{
			Month: row.Month.Month().String(),
			Year:  row.Month.Year(),
			Count: row.Count,
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Data: fiber.Map{
			"totalUsers":      totalUsers,
			"verifiedUsers":   verifiedUsers,
			"unverifiedUsers": totalUsers - verifiedUsers,
			"roleDistribution": fiber.Map{
				"admin":      adminUsers,
				"user":       regularUsers,
				"instructor": instructorUsers,
				"other":      otherUsers,
			},
			"genderDistribution": fiber.Map{
				"male":        maleUsers,
				"female":      femaleUsers,
				"other":       otherGenderUsers,
				"unspecified": totalUsers - (maleUsers + femaleUsers + otherGenderUsers),
			},
			"newUsersLast30Days":  newUsers,
			"registrationByMonth": registrationByMonth,
		},
	})
}

func jwtSecretFromEnv() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return secret
}
