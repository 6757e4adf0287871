package keyboards

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-BeautyBot/internal/bot/callbackdata"
	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	"github.com/m04kA/SMC-BeautyBot/pkg/types"
)

const (
	agreeLabel        = "✅ Согласен на обработку данных"
	chooseProcedure   = "💅 Выбрать процедуру"
	chooseMaster      = "👩 Выбрать мастера"
	consultationLabel = "📞 Нужна консультация"
	restartLabel      = "🔄 Начать заново"
)

// Consent кнопка согласия на обработку персональных данных
func Consent() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(agreeLabel, string(callbackdata.KindAgree)),
		),
	)
}

// MainMenu меню после согласия
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(chooseProcedure, string(callbackdata.KindChooseProcedure)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(chooseMaster, string(callbackdata.KindChooseMaster)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(consultationLabel, string(callbackdata.KindConsultation)),
		),
	)
}

// Restart одна кнопка "начать заново"
func Restart() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(restartLabel, string(callbackdata.KindRestart)),
		),
	)
}

// Salons по строке на салон, в порядке списка
func Salons(salons []*domain.Salon) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(salons))
	for _, s := range salons {
		label := s.Name
		if s.Address != "" {
			label = fmt.Sprintf("%s, %s", s.Name, s.Address)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackdata.Salon(s.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Procedures по строке на процедуру: "<название> — <цена> руб."
func Procedures(procedures []*domain.Procedure) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(procedures))
	for _, p := range procedures {
		label := fmt.Sprintf("%s — %s руб.", p.Name, formatPrice(p.Price))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackdata.Procedure(p.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Specialists по строке на мастера: "<имя> (<специализация>)"
func Specialists(specialists []*domain.Specialist) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(specialists))
	for _, s := range specialists {
		label := s.Name
		if s.Specialization != "" {
			label = fmt.Sprintf("%s (%s)", s.Name, s.Specialization)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackdata.Master(s.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Dates days дней подряд начиная с today, прошедших дат нет
func Dates(today time.Time, days int) tgbotapi.InlineKeyboardMarkup {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(day.Format("02.01.2006"), callbackdata.Date(day)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Times по кнопке на свободный слот
func Times(date time.Time, slots []types.TimeString) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(slots))
	for _, slot := range slots {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(slot.String(), callbackdata.Time(date, slot)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// FormatProcedurePrices прайс-лист текстом, строка на процедуру
func FormatProcedurePrices(procedures []*domain.Procedure) string {
	lines := make([]string, 0, len(procedures))
	for _, p := range procedures {
		lines = append(lines, fmt.Sprintf("%s — %s рублей", p.Name, formatPrice(p.Price)))
	}
	return strings.Join(lines, "\n")
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
