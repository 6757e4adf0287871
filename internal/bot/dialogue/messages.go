package dialogue

const (
	msgGreeting = "Здравствуйте! Я помогу записаться в салон красоты.\n" +
		"Для продолжения подтвердите согласие на обработку персональных данных."
	msgMenu             = "Что хотите сделать?"
	msgChooseSalon      = "Выберите салон:"
	msgChooseMaster     = "Выберите мастера:"
	msgChooseProcedure  = "Выберите процедуру:"
	msgChooseDate       = "Выберите дату:"
	msgChooseTime       = "Выберите время:"
	msgAskPhone         = "Отправьте номер телефона для подтверждения записи."
	msgAskPhoneConsult  = "Оставьте номер телефона, администратор перезвонит вам."
	msgNoSalons         = "Сейчас нет доступных салонов."
	msgNoMasters        = "Сейчас нет доступных мастеров."
	msgNoProcedures     = "Сейчас нет доступных процедур."
	msgNoFreeTime       = "На эту дату нет свободного времени, выберите другую дату:"
	msgConsultAccepted  = "Спасибо! Заявка принята, мы перезвоним вам в ближайшее время."
	msgUseStart         = "Чтобы записаться, нажмите /start"
	msgSharePhoneButton = "📱 Отправить номер"
	msgPricesTitle      = "Цены на процедуры:"

	msgConfirmed = "Ваша запись подтверждена!\nСалон: %s\nПроцедура: %s\nДата: %s\nВремя: %s–%s"

	errMalformed      = "Произошла ошибка: не удалось распознать выбор. Попробуйте еще раз."
	errSalonFirst     = "Произошла ошибка: сначала выберите салон."
	errProcedureFirst = "Произошла ошибка: сначала выберите процедуру."
	errPastDate       = "Произошла ошибка: эта дата уже прошла. Выберите другую дату."
	errIncomplete     = "Произошла ошибка: запись не заполнена. Выберите салон, процедуру, дату и время."
	errSlotTaken      = "Произошла ошибка: это время уже занято. Выберите другое время."
	errNoFreeMaster   = "Произошла ошибка: на это время нет свободных мастеров. Выберите другое время."
	errInvalidChoice  = "Произошла ошибка: выбранный салон, мастер или процедура недоступны. Начните заново."
	errInvalidPhone   = "Произошла ошибка: укажите номер телефона."
	errInternal       = "Произошла ошибка. Попробуйте позже."
)
