// Package callbackdata кодирует и разбирает callback_data кнопок бота.
//
// Форматы: agree, salon_<id>, choose_procedure, choose_master, master_<id>,
// procedure_<id>, date_<YYYY-MM-DD>, time_<YYYY-MM-DD>_<HH:MM>, consultation, restart.
package callbackdata

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-BeautyBot/internal/domain"
	"github.com/m04kA/SMC-BeautyBot/pkg/types"
)

// ErrMalformed возвращается для нераспознанного или поврежденного токена
var ErrMalformed = errors.New("callbackdata: malformed token")

// Kind вид действия
type Kind string

const (
	KindAgree           Kind = "agree"
	KindSalon           Kind = "salon"
	KindChooseProcedure Kind = "choose_procedure"
	KindChooseMaster    Kind = "choose_master"
	KindMaster          Kind = "master"
	KindProcedure       Kind = "procedure"
	KindDate            Kind = "date"
	KindTime            Kind = "time"
	KindConsultation    Kind = "consultation"
	KindRestart         Kind = "restart"
)

// Data разобранный токен
// ID заполнен для salon/master/procedure, Date для date/time, Time для time
type Data struct {
	Kind Kind
	ID   int64
	Date time.Time
	Time types.TimeString
}

// DateString дата в формате YYYY-MM-DD
func (d Data) DateString() string {
	return d.Date.Format(domain.DateFormat)
}

// Parse разбирает callback_data
func Parse(raw string) (Data, error) {
	switch Kind(raw) {
	case KindAgree, KindChooseProcedure, KindChooseMaster, KindConsultation, KindRestart:
		return Data{Kind: Kind(raw)}, nil
	}

	prefix, rest, ok := strings.Cut(raw, "_")
	if !ok || rest == "" {
		return Data{}, fmt.Errorf("%w: %q", ErrMalformed, raw)
	}

	switch Kind(prefix) {
	case KindSalon, KindMaster, KindProcedure:
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil || id <= 0 {
			return Data{}, fmt.Errorf("%w: %q: bad id", ErrMalformed, raw)
		}
		return Data{Kind: Kind(prefix), ID: id}, nil

	case KindDate:
		date, err := parseDate(rest)
		if err != nil {
			return Data{}, fmt.Errorf("%w: %q: %v", ErrMalformed, raw, err)
		}
		return Data{Kind: KindDate, Date: date}, nil

	case KindTime:
		dateStr, timeStr, ok := strings.Cut(rest, "_")
		if !ok {
			return Data{}, fmt.Errorf("%w: %q: expected time_<date>_<HH:MM>", ErrMalformed, raw)
		}
		date, err := parseDate(dateStr)
		if err != nil {
			return Data{}, fmt.Errorf("%w: %q: %v", ErrMalformed, raw, err)
		}
		slot, err := parseSlot(timeStr)
		if err != nil {
			return Data{}, fmt.Errorf("%w: %q: %v", ErrMalformed, raw, err)
		}
		return Data{Kind: KindTime, Date: date, Time: slot}, nil
	}

	return Data{}, fmt.Errorf("%w: %q: unknown action", ErrMalformed, raw)
}

// Salon токен выбора салона
func Salon(id int64) string { return withID(KindSalon, id) }

// Master токен выбора мастера
func Master(id int64) string { return withID(KindMaster, id) }

// Procedure токен выбора процедуры
func Procedure(id int64) string { return withID(KindProcedure, id) }

// Date токен выбора даты
func Date(date time.Time) string {
	return string(KindDate) + "_" + date.Format(domain.DateFormat)
}

// Time токен выбора времени на дату
func Time(date time.Time, slot types.TimeString) string {
	return string(KindTime) + "_" + date.Format(domain.DateFormat) + "_" + slot.String()
}

func withID(kind Kind, id int64) string {
	return string(kind) + "_" + strconv.FormatInt(id, 10)
}

// parseDate строгий YYYY-MM-DD, несуществующие даты (2025-02-30) отклоняются
func parseDate(s string) (time.Time, error) {
	if len(s) != len(domain.DateFormat) {
		return time.Time{}, fmt.Errorf("bad date %q", s)
	}
	return time.Parse(domain.DateFormat, s)
}

func parseSlot(s string) (types.TimeString, error) {
	if len(s) != len(domain.TimeFormat) {
		return "", fmt.Errorf("bad time %q", s)
	}
	return types.NewTimeStringFromString(s)
}
