package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	userModel "edutrack_backend/internals/features/users/user/model"
)

// StartOTPCleanupScheduler sweeps expired password-reset codes hourly.
// Expired codes are already unredeemable; the sweep just keeps the
// columns from accumulating stale hashes.
func StartOTPCleanupScheduler(db *gorm.DB) {
	go func() {
		for {
			res := db.Model(&userModel.UserModel{}).
				Where("reset_otp IS NOT NULL AND reset_otp_expiry < ?", time.Now()).
				Updates(map[string]interface{}{
					"reset_otp":        nil,
					"reset_otp_expiry": nil,
				})
			if res.Error != nil {
				log.Printf("[CLEANUP ERROR] expired OTP sweep: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[CLEANUP] cleared %d expired reset codes", res.RowsAffected)
			}

			time.Sleep(1 * time.Hour)
		}
	}()
}
