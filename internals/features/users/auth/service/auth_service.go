package service

import (
	"errors"
	"log"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edutrack_backend/internals/configs"
	"edutrack_backend/internals/constants"
	authHelper "edutrack_backend/internals/features/users/auth/helper"
	userDTO "edutrack_backend/internals/features/users/user/dto"
	userModel "edutrack_backend/internals/features/users/user/model"
	helper "edutrack_backend/internals/helpers"
	"edutrack_backend/internals/mailer"
)

var validate = validator.New()

/* ==========================
   SIGNUP
========================== */

type signupRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"role"`
	Age      *int    `json:"age" validate:"omitempty,gte=5,lte=120"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
}

func Signup(db *gorm.DB, c *fiber.Ctx) error {
	var input signupRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return helper.JsonValidatorError(c, err)
	}
	if input.Role != "" && !constants.IsValidRole(input.Role) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Role must be student or teacher")
	}

	email := authHelper.NormalizeEmail(input.Email)

	passwordHash, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := userModel.UserModel{
		Name:     input.Name,
		Email:    email,
		Password: passwordHash,
		Role:     input.Role,
		Age:      input.Age,
		Phone:    input.Phone,
	}
	user.SetDefaultValues()

	// The unique index on email is authoritative; a pre-check would race.
	if err := db.Create(&user).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Email is already registered")
		}
		log.Println("[ERROR] signup insert:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	return helper.JsonCreated(c, "Account created. Please log in.", userDTO.ToUserDTO(user))
}

/* ==========================
   LOGIN
========================== */

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input loginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return helper.JsonValidatorError(c, err)
	}

	// Unknown email and wrong password answer identically so the endpoint
	// cannot be used to enumerate accounts.
	var user userModel.UserModel
	err := db.First(&user, "email = ?", authHelper.NormalizeEmail(input.Email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid email or password")
		}
		log.Println("[ERROR] login lookup:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log in")
	}
	if err := authHelper.CheckPasswordHash(user.Password, input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid email or password")
	}

	token, err := JwtGenerate(user)
	if err != nil {
		log.Println("[ERROR] token sign:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue session")
	}

	return helper.JsonOK(c, "Logged in", fiber.Map{
		"token": token,
		"user":  userDTO.ToUserDTO(user),
	})
}

/* ==========================
   GOOGLE LOGIN
========================== */

type googleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// LoginGoogle verifies a Google ID token and signs the user in,
// provisioning a student account on first sign-in.
func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input googleLoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return helper.JsonValidatorError(c, err)
	}
	if configs.GoogleClientID == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Google sign-in is not configured")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google token")
	}

	email := authHelper.NormalizeEmail(claimSet.Email)
	googleID := claimSet.Sub

	var user userModel.UserModel
	err = db.First(&user, "google_id = ? OR email = ?", googleID, email).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// First sign-in: provision a student account with an unusable
		// password (random, never disclosed).
		randomSecret, genErr := GenerateOTP()
		if genErr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create account")
		}
		passwordHash, hashErr := authHelper.HashPassword(googleID + randomSecret)
		if hashErr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create account")
		}
		user = userModel.UserModel{
			Name:     claimSet.Name,
			Email:    email,
			Password: passwordHash,
			Role:     constants.RoleStudent,
			GoogleID: &googleID,
		}
		if createErr := db.Create(&user).Error; createErr != nil {
			log.Println("[ERROR] google signup insert:", createErr)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create account")
		}
	case err != nil:
		log.Println("[ERROR] google login lookup:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log in")
	default:
		if user.GoogleID == nil {
			// Existing password account, first Google sign-in: link it.
			if linkErr := db.Model(&user).Update("google_id", googleID).Error; linkErr != nil {
				log.Println("[ERROR] google id link:", linkErr)
			}
		}
	}

	token, err := JwtGenerate(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue session")
	}
	return helper.JsonOK(c, "Logged in", fiber.Map{
		"token": token,
		"user":  userDTO.ToUserDTO(user),
	})
}

/* ==========================
   FORGOT PASSWORD (OTP)
========================== */

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func ForgotPassword(db *gorm.DB, c *fiber.Ctx) error {
	var input forgotPasswordRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return helper.JsonValidatorError(c, err)
	}

	// Self-service flow: unlike login, the unknown-email case is reported
	// explicitly.
	var user userModel.UserModel
	err := db.First(&user, "email = ?", authHelper.NormalizeEmail(input.Email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Email is not registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process request")
	}

	code, err := GenerateOTP()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate reset code")
	}
	codeHash := HashOTP(code)
	expiry := time.Now().Add(OTPTTL)

	if err := db.Model(&user).Updates(map[string]interface{}{
		"reset_otp":        codeHash,
		"reset_otp_expiry": expiry,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store reset code")
	}

	if err := mailer.SendResetOTP(user.Email, code); err != nil {
		log.Println("[ERROR] reset mail:", err)
		// Roll the OTP back so a half-issued code can never be redeemed.
		_ = db.Model(&user).Updates(map[string]interface{}{
			"reset_otp":        nil,
			"reset_otp_expiry": nil,
		}).Error
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to send reset email")
	}

	return helper.JsonOK(c, "Reset code sent to your email", nil)
}

/* ==========================
   VERIFY OTP
========================== */

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

func VerifyOTP(db *gorm.DB, c *fiber.Ctx) error {
	var input verifyOTPRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return helper.JsonValidatorError(c, err)
	}

	var user userModel.UserModel
	err := db.First(&user, "email = ?", authHelper.NormalizeEmail(input.Email)).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid or expired OTP")
	}

	if !user.HasValidResetOTP(time.Now()) || !OTPMatches(*user.ResetOTP, input.OTP) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid or expired OTP")
	}

	// Single-use: the clear is conditional on the stored hash so two
	// concurrent verifications race on the update and only the winner
	// redeems the code.
	res := db.Model(&user).
		Where("reset_otp = ?", *user.ResetOTP).
		Updates(map[string]interface{}{
			"reset_otp":        nil,
			"reset_otp_expiry": nil,
		})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to redeem reset code")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid or expired OTP")
	}

	token, err := JwtGenerate(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue session")
	}
	return helper.JsonOK(c, "OTP verified", fiber.Map{
		"token": token,
		"user":  userDTO.ToUserDTO(user),
	})
}

/* ==========================
   RESET PASSWORD (authenticated)
========================== */

type resetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// ResetPassword sets a new password for the authenticated caller. The
// reset flow reaches here with the short-lived session issued by VerifyOTP.
func ResetPassword(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var input resetPasswordRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return helper.JsonValidatorError(c, err)
	}

	newHash, err := authHelper.HashPassword(input.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := db.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Update("password", newHash).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return helper.JsonUpdated(c, "Password reset successfully", nil)
}
